package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// sessionDocument is the stored shape of one session.
type sessionDocument struct {
	ID        string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	ExpiresAt *time.Time `bson:"expiresAt,omitempty"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

// expired reports whether the document outlived its TTL. The TTL monitor
// runs about once a minute, so reads check the deadline themselves.
func (d sessionDocument) expired(now time.Time) bool {
	return d.ExpiresAt != nil && !now.Before(*d.ExpiresAt)
}

func newSessionDocument(id string, value []byte, ttl time.Duration, now time.Time) sessionDocument {
	doc := sessionDocument{ID: id, Value: value, UpdatedAt: now}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		doc.ExpiresAt = &expiresAt
	}
	return doc
}

// Store keeps one document per session.
type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ session.Store = (*Store)(nil)

// NewStore creates a store on the given collection.
// Call EnsureIndexes once at startup so MongoDB purges expired sessions.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll, now: time.Now}
}

// NewStoreFromConfig uses the database and collection named in cfg.
func NewStoreFromConfig(client *mongo.Client, cfg Config) *Store {
	return NewStore(client.Database(cfg.Database).Collection(cfg.SessionCollection))
}

// EnsureIndexes creates the TTL index on expiresAt.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("session_ttl").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return errors.Join(ErrIndexCreation, err)
	}
	return nil
}

// Get returns session.ErrNotFound for missing or expired documents.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	var doc sessionDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if doc.expired(s.now()) {
		return nil, session.ErrNotFound
	}
	return doc.Value, nil
}

// Set replaces the whole document, inserting it when missing.
func (s *Store) Set(ctx context.Context, id string, value []byte, ttl time.Duration) error {
	doc := newSessionDocument(id, value, ttl, s.now().UTC())
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes the document. Missing documents are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
