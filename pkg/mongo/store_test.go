package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/mongo"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// setupStore connects to the server named by MONGODB_URL and returns a store
// on a throwaway collection. Tests are skipped when the variable is unset.
func setupStore(t *testing.T) *mongo.Store {
	t.Helper()

	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := mongo.Config{
		ConnectionURL:  url,
		Database:       "sessionkit_test",
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    10,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
	}
	client, err := mongo.New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, mongo.Healthcheck(client)(ctx))

	cfg.SessionCollection = "sessions_" + uuid.NewString()
	coll := client.Database(cfg.Database).Collection(cfg.SessionCollection)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = coll.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	store := mongo.NewStoreFromConfig(client, cfg)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestStore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", []byte(`{"v":2}`), time.Hour))
		got, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))

		require.NoError(t, store.Delete(ctx, "a"))
		_, err = store.Get(ctx, "a")
		assert.ErrorIs(t, err, session.ErrNotFound)
		assert.NoError(t, store.Delete(ctx, "a"))
	})

	t.Run("set replaces the document", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "b", []byte(`{"flash":{"x":1}}`), 0))
		require.NoError(t, store.Set(ctx, "b", []byte(`{"flash":{}}`), 0))
		got, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.JSONEq(t, `{"flash":{}}`, string(got))
	})

	t.Run("expired document is not returned", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "c", []byte("{}"), time.Millisecond))
		time.Sleep(10 * time.Millisecond)
		_, err := store.Get(ctx, "c")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("ensure indexes is idempotent", func(t *testing.T) {
		assert.NoError(t, store.EnsureIndexes(ctx))
	})
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := mongo.New(ctx, mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200",
		ConnectTimeout: 200 * time.Millisecond,
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
	})
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}
