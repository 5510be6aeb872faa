package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/noteworx/noteworx/internal/note/repository"
	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterNoteRoutes(g, service.New(repository.NewMemoryRepo()))
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	g.ServeHTTP(w, req)
	return w
}

func TestNoteHandler_CRUD(t *testing.T) {
	g := newRouter()

	// create
	w := do(g, http.MethodPost, "/api/notes", `{"title":"groceries","content":"milk","tags":["home"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	id := cr["id"]
	require.Len(t, id, 24)

	// get
	w = do(g, http.MethodGet, "/api/notes/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, id, got["id"])
	require.Equal(t, "groceries", got["title"])

	// tag
	w = do(g, http.MethodPost, "/api/notes/"+id+"/tags", `{"tags":["Errands","home"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	// find by tag
	w = do(g, http.MethodGet, "/api/notes?tag=errand", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.ElementsMatch(t, []interface{}{"home", "Errands"}, list[0]["tags"])

	// update
	w = do(g, http.MethodPut, "/api/notes/"+id, `{"title":"T2","content":"C2","tags":["x"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(g, http.MethodGet, "/api/notes?title=t2", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "C2", list[0]["content"])

	// delete
	w = do(g, http.MethodDelete, "/api/notes/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(g, http.MethodGet, "/api/notes/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	// list is empty, not null
	w = do(g, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestNoteHandler_Errors(t *testing.T) {
	g := newRouter()

	w := do(g, http.MethodPost, "/api/notes", `{"title":"  ","content":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Fields []map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Fields, 2)

	w = do(g, http.MethodPost, "/api/notes", `{"title":"dup","content":"a"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(g, http.MethodPost, "/api/notes", `{"title":"dup","content":"b"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(g, http.MethodGet, "/api/notes/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPost, "/api/notes", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
