package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/netmap/pkg/graph"
)

// MongoStore keeps one document per record. Documents use the record id
// as _id and carry a created_at index for listing.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// MongoConfig configures a MongoDB connection.
type MongoConfig struct {
	URI        string
	Database   string // default "netmap"
	Collection string // default "topologies"
}

// NewMongoStore connects to MongoDB, pings the primary and ensures the
// listing index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "netmap"
	}
	if cfg.Collection == "" {
		cfg.Collection = "topologies"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = Retry(ctx, 3, 500*time.Millisecond, func() error {
		return Retryable(client.Ping(ctx, readpref.Primary()))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, now: time.Now}, nil
}

func (s *MongoStore) Create(ctx context.Context, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, true); err != nil {
		return nil, err
	}
	// Mongo stores milliseconds; truncate so the returned record matches
	// what a later Get reads back.
	rec := newRecord(name, ds, s.now().UTC().Truncate(time.Millisecond))
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find record: %w", err)
	}
	rec.Dataset = graph.Normalize(rec.Dataset)
	return &rec, nil
}

func (s *MongoStore) Update(ctx context.Context, id, name string, ds graph.Dataset) (*Record, error) {
	if err := validateName(name, false); err != nil {
		return nil, err
	}
	set := bson.M{
		"dataset":    ds,
		"updated_at": s.now().UTC().Truncate(time.Millisecond),
	}
	if name != "" {
		set["name"] = name
	}

	var rec Record
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	rec.Dataset = graph.Normalize(rec.Dataset)
	return &rec, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cur.Close(ctx)

	out := []Summary{}
	for cur.Next(ctx) {
		var rec Record
		if err := cur.Decode(&rec); err != nil {
			continue
		}
		out = append(out, rec.Summary())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Latest(ctx context.Context) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest record: %w", err)
	}
	rec.Dataset = graph.Normalize(rec.Dataset)
	return &rec, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes the collection. Tests use it to clean up.
func (s *MongoStore) Drop(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

var _ Store = (*MongoStore)(nil)
