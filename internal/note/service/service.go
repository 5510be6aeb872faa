package service

import (
	"context"
	"errors"
	"time"

	"github.com/noteworx/noteworx/internal/note"
	"github.com/noteworx/noteworx/internal/note/repository"
	"github.com/noteworx/noteworx/pkg/logger"
	"github.com/noteworx/noteworx/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service turns raw command input into notes and forwards them to the
// repository. It owns the clock so created/updated dates are set in one place.
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now; used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddNote stores a new note and returns its id.
func (s *Service) AddNote(ctx context.Context, title, content string, tags []string) (primitive.ObjectID, error) {
	var id primitive.ObjectID
	err := s.observe("add", func() error {
		var err error
		id, err = s.repo.AddNote(ctx, note.New(title, content, tags, s.now()))
		return err
	})
	return id, err
}

// FindNoteByID returns nil without error when no note has the id.
func (s *Service) FindNoteByID(ctx context.Context, id string) (*note.Note, error) {
	var n *note.Note
	err := s.observe("find_by_id", func() error {
		var err error
		n, err = s.repo.FindNoteByID(ctx, id)
		return err
	})
	return n, err
}

func (s *Service) FindNotesByTag(ctx context.Context, tag string) ([]*note.Note, error) {
	return s.list("find_by_tag", func() ([]*note.Note, error) { return s.repo.FindNotesByTag(ctx, tag) })
}

func (s *Service) FindNotesByTitle(ctx context.Context, title string) ([]*note.Note, error) {
	return s.list("find_by_title", func() ([]*note.Note, error) { return s.repo.FindNotesByTitle(ctx, title) })
}

func (s *Service) ListNotes(ctx context.Context) ([]*note.Note, error) {
	return s.list("list", func() ([]*note.Note, error) { return s.repo.ListNotes(ctx) })
}

func (s *Service) RemoveNote(ctx context.Context, id string) error {
	return s.observe("remove", func() error { return s.repo.RemoveNote(ctx, id) })
}

// TagNote adds tags to the note without repeating tags it already has.
func (s *Service) TagNote(ctx context.Context, id string, tags []string) error {
	return s.observe("tag", func() error { return s.repo.TagNote(ctx, id, tags) })
}

// UpdateNote replaces title, content and tags and stamps the update time.
func (s *Service) UpdateNote(ctx context.Context, id, title, content string, tags []string) error {
	repl := &note.Note{Title: title, Content: content, Tags: tags, UpdatedDate: s.now()}
	return s.observe("update", func() error { return s.repo.UpdateNote(ctx, id, repl) })
}

func (s *Service) list(op string, fn func() ([]*note.Note, error)) ([]*note.Note, error) {
	var out []*note.Note
	err := s.observe(op, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

func (s *Service) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	res := result(err)
	metrics.NoteOperations.WithLabelValues(op, res).Inc()
	metrics.NoteOperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		logger.WithField("op", op).WithField("result", res).Debugf("note operation failed after %s: %v", elapsed, err)
	} else {
		logger.WithField("op", op).Debugf("note operation done in %s", elapsed)
	}
	return err
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, note.ErrInvalidArgument):
		return "invalid_argument"
	case note.IsValidation(err):
		return "validation_error"
	case note.IsStorage(err):
		return "storage_error"
	}
	return "error"
}
