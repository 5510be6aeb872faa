package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/noteworx/noteworx/internal/note"
	"gopkg.in/yaml.v3"
)

// noteView is the printed form of a note; the id is rendered as hex so both
// encoders produce the same shape.
type noteView struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Content     string    `json:"content" yaml:"content"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreatedDate time.Time `json:"created_date" yaml:"created_date"`
	UpdatedDate time.Time `json:"updated_date" yaml:"updated_date"`
}

func viewOf(n *note.Note) noteView {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteView{
		ID:          n.ID.Hex(),
		Title:       n.Title,
		Content:     n.Content,
		Tags:        tags,
		CreatedDate: n.CreatedDate,
		UpdatedDate: n.UpdatedDate,
	}
}

func printNote(w io.Writer, format string, n *note.Note) error {
	return encode(w, format, viewOf(n))
}

func printNotes(w io.Writer, format string, notes []*note.Note) error {
	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, viewOf(n))
	}
	return encode(w, format, views)
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown output format %q", note.ErrInvalidArgument, format)
}
