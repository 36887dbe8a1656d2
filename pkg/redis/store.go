package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "session:"

// Store keeps session records as plain string keys.
// SET replaces the whole value, and expiry is delegated to Redis.
type Store struct {
	db            redis.UniversalClient
	prefix        string
	scanBatchSize int64
}

var _ session.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides the key prefix. An empty prefix stores bare session IDs.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithScanBatchSize sets the SCAN COUNT hint used by Len.
func WithScanBatchSize(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.scanBatchSize = int64(n)
		}
	}
}

// NewStore creates a session store on top of an existing client.
func NewStore(client redis.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{
		db:            client,
		prefix:        DefaultKeyPrefix,
		scanBatchSize: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig creates a store using the prefix and scan settings of cfg.
func NewStoreFromConfig(client redis.UniversalClient, cfg Config) *Store {
	return NewStore(client, WithKeyPrefix(cfg.KeyPrefix), WithScanBatchSize(cfg.ScanBatchSize))
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Get returns session.ErrNotFound for missing or expired keys.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	val, err := s.db.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores value with a PX expiry. Zero ttl keeps the key until deleted.
func (s *Store) Set(ctx context.Context, id string, value []byte, ttl time.Duration) error {
	return s.db.Set(ctx, s.key(id), value, ttl).Err()
}

// Delete removes the key. Missing keys are ignored by Redis.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.Del(ctx, s.key(id)).Err()
}

// Len counts stored sessions by scanning the key prefix.
func (s *Store) Len(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := s.db.Scan(ctx, cursor, s.prefix+"*", s.scanBatchSize).Result()
		if err != nil {
			return 0, err
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}
