package repository

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the only boundary between the application and the note store.
//
// Lookups that match nothing are not errors: FindNoteByID returns (nil, nil)
// and the list lookups return an empty slice. RemoveNote, TagNote and
// UpdateNote silently do nothing when the id matches no note.
type Repository interface {
	AddNote(ctx context.Context, n *note.Note) (primitive.ObjectID, error)
	FindNoteByID(ctx context.Context, id string) (*note.Note, error)
	FindNotesByTag(ctx context.Context, tag string) ([]*note.Note, error)
	FindNotesByTitle(ctx context.Context, title string) ([]*note.Note, error)
	ListNotes(ctx context.Context) ([]*note.Note, error)
	RemoveNote(ctx context.Context, id string) error
	TagNote(ctx context.Context, id string, tags []string) error
	UpdateNote(ctx context.Context, id string, n *note.Note) error
}

var (
	_ Repository = (*MongoRepo)(nil)
	_ Repository = (*RedisRepo)(nil)
	_ Repository = (*MemoryRepo)(nil)
)

func requireNote(n *note.Note) error {
	if n == nil {
		return fmt.Errorf("%w: note is required", note.ErrInvalidArgument)
	}
	return nil
}

// unionTags appends the tags not already present, keeping existing order.
func unionTags(existing, add []string) []string {
	out := append([]string{}, existing...)
	for _, t := range note.CleanTags(add) {
		found := false
		for _, e := range out {
			if e == t {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t)
		}
	}
	return out
}
