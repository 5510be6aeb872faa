package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/noteworx/noteworx/internal/note"
	"github.com/noteworx/noteworx/internal/note/repository"
	"github.com/noteworx/noteworx/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestService() (*Service, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	return New(repository.NewMemoryRepo(), WithClock(clock.now)), clock
}

func TestAddNoteStampsDates(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "title", "content", []string{"a"})
	require.NoError(t, err)

	n, err := svc.FindNoteByID(ctx, id.Hex())
	require.NoError(t, err)
	require.Equal(t, clock.t, n.CreatedDate)
	require.Equal(t, clock.t, n.UpdatedDate)
}

func TestUpdateNoteAdvancesUpdatedDate(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "T1", "C1", []string{"old"})
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour)
	require.NoError(t, svc.UpdateNote(ctx, id.Hex(), "T2", "C2", []string{"x"}))

	n, err := svc.FindNoteByID(ctx, id.Hex())
	require.NoError(t, err)
	require.Equal(t, "T2", n.Title)
	require.Equal(t, "C2", n.Content)
	require.Equal(t, []string{"x"}, n.Tags)
	require.True(t, n.UpdatedDate.After(n.CreatedDate))
}

func TestServiceRecordsOperationMetrics(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	okBefore := testutil.ToFloat64(metrics.NoteOperations.WithLabelValues("add", "ok"))
	invalidBefore := testutil.ToFloat64(metrics.NoteOperations.WithLabelValues("add", "validation_error"))
	argBefore := testutil.ToFloat64(metrics.NoteOperations.WithLabelValues("remove", "invalid_argument"))

	_, err := svc.AddNote(ctx, "metrics", "content", nil)
	require.NoError(t, err)
	_, err = svc.AddNote(ctx, "", "content", nil)
	require.True(t, note.IsValidation(err))
	require.ErrorIs(t, svc.RemoveNote(ctx, ""), note.ErrInvalidArgument)

	require.Equal(t, okBefore+1, testutil.ToFloat64(metrics.NoteOperations.WithLabelValues("add", "ok")))
	require.Equal(t, invalidBefore+1, testutil.ToFloat64(metrics.NoteOperations.WithLabelValues("add", "validation_error")))
	require.Equal(t, argBefore+1, testutil.ToFloat64(metrics.NoteOperations.WithLabelValues("remove", "invalid_argument")))
}

type failingRepo struct {
	repository.Repository
	err error
}

func (f *failingRepo) ListNotes(context.Context) ([]*note.Note, error) { return nil, f.err }
func (f *failingRepo) AddNote(context.Context, *note.Note) (primitive.ObjectID, error) {
	return primitive.NilObjectID, f.err
}

func TestServicePropagatesStorageErrors(t *testing.T) {
	storageErr := note.NewStorageError("list notes", errors.New("connection refused"))
	svc := New(&failingRepo{err: storageErr})
	ctx := context.Background()

	_, err := svc.ListNotes(ctx)
	require.ErrorIs(t, err, storageErr)
	require.Equal(t, "storage_error", result(err))

	_, err = svc.AddNote(ctx, "t", "c", nil)
	require.True(t, note.IsStorage(err))
}

type memUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (m *memUploader) UploadFile(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.err != nil {
		return m.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if int64(buf.Len()) != size {
		return errors.New("size mismatch")
	}
	m.key, m.contentType, m.body = key, contentType, buf.Bytes()
	return nil
}

func TestExportUploadsSnapshot(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	_, err := svc.AddNote(ctx, "one", "c1", []string{"a"})
	require.NoError(t, err)
	_, err = svc.AddNote(ctx, "two", "c2", nil)
	require.NoError(t, err)

	up := &memUploader{}
	key, snap, err := svc.Export(ctx, up, "")
	require.NoError(t, err)
	require.Equal(t, ExportKey(clock.t), key)
	require.Equal(t, "exports/notes-20240501T090000Z.json", key)
	require.Equal(t, 2, snap.Count)
	require.Equal(t, key, up.key)
	require.Equal(t, "application/json", up.contentType)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(up.body, &decoded))
	require.Equal(t, 2, decoded.Count)
	require.Equal(t, "one", decoded.Notes[0].Title)
}

func TestExportUploadFailure(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Export(context.Background(), &memUploader{err: errors.New("bucket gone")}, "k.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bucket gone")
}
