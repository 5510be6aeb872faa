package repository

import (
	"context"
	"fmt"

	"github.com/noteworx/noteworx/internal/note"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. The collection
// handle comes from a client owned by the caller, which is expected to
// disconnect it when the process is done.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo ensures the unique title index exists before returning, so
// the first insert already sees the uniqueness constraint.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idxModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("title_unique"),
	}
	if _, err := col.Indexes().CreateOne(ctx, idxModel); err != nil {
		return nil, note.NewStorageError("create title index", err)
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) AddNote(ctx context.Context, n *note.Note) (primitive.ObjectID, error) {
	if err := requireNote(n); err != nil {
		return primitive.NilObjectID, err
	}
	if err := n.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	res, err := m.col.InsertOne(ctx, n)
	if err != nil {
		return primitive.NilObjectID, writeError("add note", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, note.NewStorageError("add note", fmt.Errorf("unexpected inserted id %v", res.InsertedID))
	}
	n.ID = oid
	return oid, nil
}

func (m *MongoRepo) FindNoteByID(ctx context.Context, id string) (*note.Note, error) {
	q, err := note.ByID(id).BSON()
	if err != nil {
		return nil, err
	}
	var n note.Note
	if err := m.col.FindOne(ctx, q).Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, note.NewStorageError("find note", err)
	}
	return &n, nil
}

func (m *MongoRepo) FindNotesByTag(ctx context.Context, tag string) ([]*note.Note, error) {
	return m.find(ctx, note.ByTag(tag))
}

func (m *MongoRepo) FindNotesByTitle(ctx context.Context, title string) ([]*note.Note, error) {
	return m.find(ctx, note.ByTitle(title))
}

func (m *MongoRepo) ListNotes(ctx context.Context) ([]*note.Note, error) {
	return m.find(ctx, note.All())
}

func (m *MongoRepo) find(ctx context.Context, f note.Filter) ([]*note.Note, error) {
	q, err := f.BSON()
	if err != nil {
		return nil, err
	}
	cur, err := m.col.Find(ctx, q)
	if err != nil {
		return nil, note.NewStorageError("find notes by "+f.Kind.String(), err)
	}
	defer cur.Close(ctx)
	out := []*note.Note{}
	for cur.Next(ctx) {
		var n note.Note
		if err := cur.Decode(&n); err != nil {
			return nil, note.NewStorageError("decode note", err)
		}
		out = append(out, &n)
	}
	if err := cur.Err(); err != nil {
		return nil, note.NewStorageError("find notes by "+f.Kind.String(), err)
	}
	return out, nil
}

func (m *MongoRepo) RemoveNote(ctx context.Context, id string) error {
	q, err := note.ByID(id).BSON()
	if err != nil {
		return err
	}
	if _, err := m.col.DeleteOne(ctx, q); err != nil {
		return note.NewStorageError("remove note", err)
	}
	return nil
}

func (m *MongoRepo) TagNote(ctx context.Context, id string, tags []string) error {
	q, err := note.ByID(id).BSON()
	if err != nil {
		return err
	}
	tags = note.CleanTags(tags)
	if len(tags) == 0 {
		return fmt.Errorf("%w: at least one tag is required", note.ErrInvalidArgument)
	}
	upd := bson.M{"$addToSet": bson.M{"tags": bson.M{"$each": tags}}}
	if _, err := m.col.UpdateOne(ctx, q, upd); err != nil {
		return note.NewStorageError("tag note", err)
	}
	return nil
}

func (m *MongoRepo) UpdateNote(ctx context.Context, id string, n *note.Note) error {
	q, err := note.ByID(id).BSON()
	if err != nil {
		return err
	}
	if err := requireNote(n); err != nil {
		return err
	}
	if err := n.ValidateReplacement(); err != nil {
		return err
	}
	upd := bson.M{"$set": bson.M{
		"title":        n.Title,
		"content":      n.Content,
		"tags":         n.Tags,
		"updated_date": n.UpdatedDate,
	}}
	if _, err := m.col.UpdateOne(ctx, q, upd); err != nil {
		return writeError("update note", err)
	}
	return nil
}

func writeError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return note.NewStorageError(op, fmt.Errorf("%w: %v", note.ErrDuplicateTitle, err))
	}
	return note.NewStorageError(op, err)
}
