package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo defaults.
const (
	DefaultMongoURI        = "mongodb://localhost:27017"
	DefaultMongoDatabase   = "gridstack"
	DefaultMongoCollection = "layouts"
)

// MongoOptions configures NewMongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	Keyer      Keyer
	TTL        time.Duration
}

// MongoStore keeps each snapshot as one document keyed by _id. Layout items
// are stored as native BSON subdocuments, so they can be queried directly.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	keyer  Keyer
	ttl    time.Duration
}

// mongoDocument is the stored shape.
type mongoDocument struct {
	ID        string    `bson:"_id"`
	Snapshot  Snapshot  `bson:",inline"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// NewMongoStore connects, pings, and ensures the expiry index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		opts.URI = DefaultMongoURI
	}
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	if opts.Keyer == nil {
		opts.Keyer = NewDefaultKeyer()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo store: %w", err)
	}
	if err := RetryWithBackoff(ctx, func() error { return classifyMongo(client.Ping(ctx, nil)) }); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo store: ping: %w", err)
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		keyer:  opts.Keyer,
		ttl:    opts.TTL,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// ensureIndexes creates a TTL index on expires_at. Documents without the
// field never expire.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo store: create ttl index: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, name string) (Snapshot, bool, error) {
	key := s.keyer.Key(name)
	var doc mongoDocument
	err := RetryWithBackoff(ctx, func() error {
		return classifyMongo(s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc))
	})
	// The TTL monitor runs about once a minute, so expiry is also checked here.
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && expired(doc.ExpiresAt)) {
		reportLoad(ctx, BackendMongo, key, false)
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	reportLoad(ctx, BackendMongo, key, true)
	return doc.Snapshot, true, nil
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, snap Snapshot) error {
	if err := validName(snap.Name); err != nil {
		return err
	}
	key := s.keyer.Key(snap.Name)
	doc := mongoDocument{ID: key, Snapshot: prepare(snap), ExpiresAt: expiry(s.ttl)}

	err := RetryWithBackoff(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
		return classifyMongo(err)
	})
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", key, err)
	}
	reportSave(ctx, BackendMongo, key, len(doc.Snapshot.Layout))
	return nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	key := s.keyer.Key(name)
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1, "expires_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	var docs []struct {
		ID        string    `bson:"_id"`
		ExpiresAt time.Time `bson:"expires_at"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		if expired(d.ExpiresAt) {
			continue
		}
		if name, ok := s.keyer.Name(d.ID); ok {
			names = append(names, name)
		}
	}
	return sortedNames(names), nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func classifyMongo(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

var _ Store = (*MongoStore)(nil)
