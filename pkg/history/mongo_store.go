package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

const defaultMongoCollection = "qr_history"

// MongoStore keeps history in a MongoDB collection. Ordering comes from a
// counter document in "<collection>_counters", so every instance sharing the
// collection draws from one monotonic sequence.
type MongoStore struct {
	coll     *mongo.Collection
	counters *mongo.Collection
	name     string
	maxItems int
}

type mongoCounter struct {
	Seq int64 `bson:"seq"`
}

type mongoRecord struct {
	ID          string    `bson:"_id"`
	Seq         int64     `bson:"seq"`
	Kind        string    `bson:"kind"`
	ContentType string    `bson:"content_type"`
	Content     string    `bson:"content"`
	Timestamp   time.Time `bson:"timestamp"`
	Metadata    *Metadata `bson:"metadata,omitempty"`
	Location    *Location `bson:"location,omitempty"`
}

func (m mongoRecord) record() (Record, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:          id,
		Kind:        Kind(m.Kind),
		ContentType: qrcontent.ContentType(m.ContentType),
		Content:     m.Content,
		Timestamp:   m.Timestamp.UTC(),
		Metadata:    m.Metadata,
		Location:    m.Location,
	}, nil
}

// NewMongoStore creates a store on db. An empty collection name uses "qr_history".
func NewMongoStore(ctx context.Context, db *mongo.Database, collection string, opts ...Option) (*MongoStore, error) {
	if collection == "" {
		collection = defaultMongoCollection
	}
	coll := db.Collection(collection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "seq", Value: -1}},
	})
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	o := newOptions(opts)
	return &MongoStore{
		coll:     coll,
		counters: db.Collection(collection + "_counters"),
		name:     collection,
		maxItems: o.maxItems,
	}, nil
}

// nextSeq atomically increments and returns the collection's sequence.
func (s *MongoStore) nextSeq(ctx context.Context) (int64, error) {
	var c mongoCounter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: s.name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, errors.Join(ErrStoreFailed, err)
	}
	return c.Seq, nil
}

func (s *MongoStore) Append(ctx context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	seq, err := s.nextSeq(ctx)
	if err != nil {
		return err
	}

	doc := mongoRecord{
		ID:          r.ID.String(),
		Seq:         seq,
		Kind:        string(r.Kind),
		ContentType: string(r.ContentType),
		Content:     r.Content,
		Timestamp:   r.Timestamp,
		Metadata:    r.Metadata,
		Location:    r.Location,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	return s.evict(ctx)
}

// evict removes everything past the newest maxItems documents.
func (s *MongoStore) evict(ctx context.Context) error {
	cur, err := s.coll.Find(ctx, bson.D{},
		options.Find().
			SetSort(bson.D{{Key: "seq", Value: -1}}).
			SetSkip(int64(s.maxItems)).
			SetProjection(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	var stale []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &stale); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]string, 0, len(stale))
	for _, d := range stale {
		ids = append(ids, d.ID)
	}
	if _, err := s.coll.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Record, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "seq", Value: -1}})
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		r, err := d.record()
		if err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MongoStore) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MongoStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
