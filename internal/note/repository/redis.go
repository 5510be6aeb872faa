package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noteworx/noteworx/internal/note"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxTxAttempts = 3

// RedisRepo implements Repository on Redis. Notes are stored as JSON under
// "<prefix>note:<id>", insertion order is kept in the list "<prefix>notes"
// and "<prefix>title:<title>" holds the owning id to keep titles unique.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-based note repository. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "noteworx:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) noteKey(id primitive.ObjectID) string { return r.prefix + "note:" + id.Hex() }
func (r *RedisRepo) titleKey(title string) string         { return r.prefix + "title:" + title }
func (r *RedisRepo) indexKey() string                     { return r.prefix + "notes" }

func (r *RedisRepo) AddNote(ctx context.Context, n *note.Note) (primitive.ObjectID, error) {
	if err := requireNote(n); err != nil {
		return primitive.NilObjectID, err
	}
	if err := n.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	oid := primitive.NewObjectID()
	ok, err := r.client.SetNX(ctx, r.titleKey(n.Title), oid.Hex(), 0).Result()
	if err != nil {
		return primitive.NilObjectID, note.NewStorageError("add note", err)
	}
	if !ok {
		return primitive.NilObjectID, note.NewStorageError("add note", fmt.Errorf("%w: %q", note.ErrDuplicateTitle, n.Title))
	}
	cp := copyNote(n)
	cp.ID = oid
	b, err := json.Marshal(cp)
	if err != nil {
		_ = r.client.Del(ctx, r.titleKey(n.Title)).Err()
		return primitive.NilObjectID, note.NewStorageError("add note", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.noteKey(oid), b, 0)
		pipe.RPush(ctx, r.indexKey(), oid.Hex())
		return nil
	})
	if err != nil {
		_ = r.client.Del(ctx, r.titleKey(n.Title)).Err()
		return primitive.NilObjectID, note.NewStorageError("add note", err)
	}
	n.ID = oid
	return oid, nil
}

func (r *RedisRepo) FindNoteByID(ctx context.Context, id string) (*note.Note, error) {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return nil, err
	}
	n, err := r.get(ctx, r.client, oid)
	if err != nil {
		return nil, note.NewStorageError("find note", err)
	}
	return n, nil
}

func (r *RedisRepo) FindNotesByTag(ctx context.Context, tag string) ([]*note.Note, error) {
	return r.find(ctx, note.ByTag(tag))
}

func (r *RedisRepo) FindNotesByTitle(ctx context.Context, title string) ([]*note.Note, error) {
	return r.find(ctx, note.ByTitle(title))
}

func (r *RedisRepo) ListNotes(ctx context.Context) ([]*note.Note, error) {
	return r.find(ctx, note.All())
}

func (r *RedisRepo) find(ctx context.Context, f note.Filter) ([]*note.Note, error) {
	match, err := f.Matcher()
	if err != nil {
		return nil, err
	}
	op := "find notes by " + f.Kind.String()
	ids, err := r.client.LRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, note.NewStorageError(op, err)
	}
	out := []*note.Note{}
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.prefix+"note:"+id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, note.NewStorageError(op, err)
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// removed between LRANGE and MGET
			continue
		}
		var n note.Note
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			return nil, note.NewStorageError("decode note", err)
		}
		if match(&n) {
			out = append(out, &n)
		}
	}
	return out, nil
}

func (r *RedisRepo) RemoveNote(ctx context.Context, id string) error {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return err
	}
	key := r.noteKey(oid)
	err = r.watch(ctx, func(tx *redis.Tx) error {
		n, err := r.get(ctx, tx, oid)
		if err != nil || n == nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key, r.titleKey(n.Title))
			pipe.LRem(ctx, r.indexKey(), 0, oid.Hex())
			return nil
		})
		return err
	}, key)
	return note.NewStorageError("remove note", err)
}

func (r *RedisRepo) TagNote(ctx context.Context, id string, tags []string) error {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return err
	}
	if len(note.CleanTags(tags)) == 0 {
		return fmt.Errorf("%w: at least one tag is required", note.ErrInvalidArgument)
	}
	key := r.noteKey(oid)
	err = r.watch(ctx, func(tx *redis.Tx) error {
		n, err := r.get(ctx, tx, oid)
		if err != nil || n == nil {
			return err
		}
		n.Tags = unionTags(n.Tags, tags)
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key)
	return note.NewStorageError("tag note", err)
}

func (r *RedisRepo) UpdateNote(ctx context.Context, id string, repl *note.Note) error {
	oid, err := note.ByID(id).ObjectID()
	if err != nil {
		return err
	}
	if err := requireNote(repl); err != nil {
		return err
	}
	if err := repl.ValidateReplacement(); err != nil {
		return err
	}
	key := r.noteKey(oid)
	newTitleKey := r.titleKey(repl.Title)
	err = r.watch(ctx, func(tx *redis.Tx) error {
		n, err := r.get(ctx, tx, oid)
		if err != nil || n == nil {
			return err
		}
		owner, err := tx.Get(ctx, newTitleKey).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil && owner != oid.Hex() {
			return fmt.Errorf("%w: %q", note.ErrDuplicateTitle, repl.Title)
		}
		oldTitle := n.Title
		n.Title = repl.Title
		n.Content = repl.Content
		n.Tags = append([]string{}, repl.Tags...)
		n.UpdatedDate = repl.UpdatedDate
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if oldTitle != n.Title {
				pipe.Del(ctx, r.titleKey(oldTitle))
			}
			pipe.Set(ctx, newTitleKey, oid.Hex(), 0)
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key, newTitleKey)
	return note.NewStorageError("update note", err)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRepo) get(ctx context.Context, c stringGetter, oid primitive.ObjectID) (*note.Note, error) {
	b, err := c.Get(ctx, r.noteKey(oid)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var n note.Note
	if err := json.Unmarshal(b, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// watch runs fn in an optimistic transaction, retrying when a watched key
// changes underneath it.
func (r *RedisRepo) watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
	var err error
	for i := 0; i < maxTxAttempts; i++ {
		err = r.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
