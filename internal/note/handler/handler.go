package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noteworx/noteworx/internal/note"
	"github.com/noteworx/noteworx/internal/note/service"
)

type noteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type tagRequest struct {
	Tags []string `json:"tags"`
}

// RegisterNoteRoutes mounts the note API on r.
func RegisterNoteRoutes(r gin.IRouter, svc *service.Service) {
	g := r.Group("/api/notes")

	g.GET("", func(c *gin.Context) {
		var (
			list []*note.Note
			err  error
		)
		switch {
		case c.Query("tag") != "":
			list, err = svc.FindNotesByTag(c.Request.Context(), c.Query("tag"))
		case c.Query("title") != "":
			list, err = svc.FindNotesByTitle(c.Request.Context(), c.Query("title"))
		default:
			list, err = svc.ListNotes(c.Request.Context())
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		var req noteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := svc.AddNote(c.Request.Context(), req.Title, req.Content, req.Tags)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	})

	g.GET("/:id", func(c *gin.Context) {
		n, err := svc.FindNoteByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if n == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, n)
	})

	g.PUT("/:id", func(c *gin.Context) {
		var req noteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.UpdateNote(c.Request.Context(), c.Param("id"), req.Title, req.Content, req.Tags); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	g.POST("/:id/tags", func(c *gin.Context) {
		var req tagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.TagNote(c.Request.Context(), c.Param("id"), req.Tags); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if err := svc.RemoveNote(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func writeError(c *gin.Context, err error) {
	var ve *note.ValidationError
	switch {
	case errors.Is(err, note.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, note.ErrDuplicateTitle):
		c.JSON(http.StatusConflict, gin.H{"error": note.ErrDuplicateTitle.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
