package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterDocs serves the OpenAPI description of the note API.
//   - GET /swagger/index.html -> Swagger UI page
//   - GET /swagger/doc.json   -> OpenAPI JSON
func RegisterDocs(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(openAPIDoc))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>noteworx API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: '/swagger/doc.json', dom_id: '#swagger-ui' })
    </script>
  </body>
</html>`

const openAPIDoc = `{
  "openapi": "3.0.0",
  "info": { "title": "noteworx", "version": "v1" },
  "components": {
    "schemas": {
      "Note": { "type": "object", "properties": {
        "id": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"},
        "tags": {"type":"array","items":{"type":"string"}},
        "created_date": {"type":"string","format":"date-time"},
        "updated_date": {"type":"string","format":"date-time"} } },
      "NoteInput": { "type": "object", "required": ["title","content"], "properties": {
        "title": {"type":"string"}, "content": {"type":"string"},
        "tags": {"type":"array","items":{"type":"string"}} } }
    }
  },
  "paths": {
    "/api/notes": {
      "get": {
        "summary": "List notes, optionally filtered by tag or title substring",
        "parameters": [
          {"name":"tag","in":"query","schema":{"type":"string"}},
          {"name":"title","in":"query","schema":{"type":"string"}}
        ],
        "responses": { "200": { "description": "notes" }, "400": { "description": "invalid filter" } }
      },
      "post": {
        "summary": "Create a note",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/NoteInput"} } } },
        "responses": { "201": { "description": "created" }, "409": { "description": "duplicate title" }, "422": { "description": "validation failed" } }
      }
    },
    "/api/notes/{id}": {
      "get": { "summary": "Fetch one note", "responses": { "200": { "description": "note" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace title, content and tags", "responses": { "200": { "description": "updated" }, "409": { "description": "duplicate title" }, "422": { "description": "validation failed" } } },
      "delete": { "summary": "Remove a note", "responses": { "204": { "description": "removed" } } }
    },
    "/api/notes/{id}/tags": {
      "post": {
        "summary": "Add tags to a note",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"tags":{"type":"array","items":{"type":"string"}}}} } } },
        "responses": { "200": { "description": "tagged" }, "400": { "description": "no tags" } }
      }
    }
  }
}`
