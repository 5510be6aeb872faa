package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/noteworx/noteworx/internal/note"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-process repository used by unit tests and by
// `--store memory`. It keeps insertion order so ListNotes behaves like a
// freshly created collection.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]*note.Note
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]*note.Note)}
}

func (m *MemoryRepo) AddNote(_ context.Context, n *note.Note) (primitive.ObjectID, error) {
	if err := requireNote(n); err != nil {
		return primitive.NilObjectID, err
	}
	if err := n.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.titleTaken(n.Title, primitive.NilObjectID) {
		return primitive.NilObjectID, note.NewStorageError("add note", fmt.Errorf("%w: %q", note.ErrDuplicateTitle, n.Title))
	}
	n.ID = primitive.NewObjectID()
	cp := copyNote(n)
	m.store[cp.ID] = cp
	m.order = append(m.order, cp.ID)
	return n.ID, nil
}

func (m *MemoryRepo) FindNoteByID(_ context.Context, id string) (*note.Note, error) {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.store[oid]; ok {
		return copyNote(n), nil
	}
	return nil, nil
}

func (m *MemoryRepo) FindNotesByTag(_ context.Context, tag string) ([]*note.Note, error) {
	return m.find(note.ByTag(tag))
}

func (m *MemoryRepo) FindNotesByTitle(_ context.Context, title string) ([]*note.Note, error) {
	return m.find(note.ByTitle(title))
}

func (m *MemoryRepo) ListNotes(_ context.Context) ([]*note.Note, error) {
	return m.find(note.All())
}

func (m *MemoryRepo) find(f note.Filter) ([]*note.Note, error) {
	match, err := f.Matcher()
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*note.Note, 0, len(m.order))
	for _, id := range m.order {
		if n := m.store[id]; match(n) {
			out = append(out, copyNote(n))
		}
	}
	return out, nil
}

func (m *MemoryRepo) RemoveNote(_ context.Context, id string) error {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[oid]; !ok {
		return nil
	}
	delete(m.store, oid)
	for i, o := range m.order {
		if o == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepo) TagNote(_ context.Context, id string, tags []string) error {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return err
	}
	if len(note.CleanTags(tags)) == 0 {
		return fmt.Errorf("%w: at least one tag is required", note.ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.store[oid]; ok {
		n.Tags = unionTags(n.Tags, tags)
	}
	return nil
}

func (m *MemoryRepo) UpdateNote(_ context.Context, id string, n *note.Note) error {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return err
	}
	if err := requireNote(n); err != nil {
		return err
	}
	if err := n.ValidateReplacement(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[oid]
	if !ok {
		return nil
	}
	if m.titleTaken(n.Title, oid) {
		return note.NewStorageError("update note", fmt.Errorf("%w: %q", note.ErrDuplicateTitle, n.Title))
	}
	d.Title = n.Title
	d.Content = n.Content
	d.Tags = append([]string{}, n.Tags...)
	d.UpdatedDate = n.UpdatedDate
	return nil
}

// titleTaken must be called with mu held.
func (m *MemoryRepo) titleTaken(title string, except primitive.ObjectID) bool {
	for id, n := range m.store {
		if id != except && n.Title == title {
			return true
		}
	}
	return false
}

func copyNote(n *note.Note) *note.Note {
	cp := *n
	cp.Tags = append([]string{}, n.Tags...)
	return &cp
}
