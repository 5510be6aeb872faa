package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/noteworx/noteworx/internal/note"
)

// SnapshotWriter is the object store an export is uploaded to.
type SnapshotWriter interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Snapshot is the JSON document written by Export.
type Snapshot struct {
	ExportedAt time.Time    `json:"exported_at"`
	Count      int          `json:"count"`
	Notes      []*note.Note `json:"notes"`
}

// ExportKey is the default object key for a snapshot taken at t.
func ExportKey(t time.Time) string {
	return "exports/notes-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Export uploads every note as one JSON snapshot under key. An empty key
// uses ExportKey.
func (s *Service) Export(ctx context.Context, w SnapshotWriter, key string) (string, *Snapshot, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return "", nil, err
	}
	snap := &Snapshot{ExportedAt: s.now(), Count: len(notes), Notes: notes}
	if key == "" {
		key = ExportKey(snap.ExportedAt)
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode snapshot: %w", err)
	}
	err = s.observe("export", func() error {
		return w.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json")
	})
	if err != nil {
		return "", nil, fmt.Errorf("upload snapshot: %w", err)
	}
	return key, snap, nil
}
