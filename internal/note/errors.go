package note

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument marks a missing or malformed id, tag or title. It is
	// always returned before any I/O takes place.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateTitle is wrapped by a StorageError when the store rejects a
	// write because another note already uses the title.
	ErrDuplicateTitle = errors.New("a note with this title already exists")
)

// FieldError describes one field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError collects every field-level failure of a note.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "\n")
}

// StorageError wraps a connection, query or constraint failure reported by the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err, or returns nil when err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err carries a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
