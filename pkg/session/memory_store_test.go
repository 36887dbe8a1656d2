package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("set get delete", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "s1", []byte(`{"v":2}`), 0))
		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, `{"v":2}`, string(got))

		require.NoError(t, store.Delete(ctx, "s1"))
		_, err = store.Get(ctx, "s1")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete missing id is not an error", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()
		assert.NoError(t, store.Delete(ctx, "missing"))
	})

	t.Run("set replaces value", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "s1", []byte(`{"a":1,"b":2}`), 0))
		require.NoError(t, store.Set(ctx, "s1", []byte(`{"a":1}`), 0))
		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
	})

	t.Run("values are copied", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		value := []byte("abc")
		require.NoError(t, store.Set(ctx, "s1", value, 0))
		value[0] = 'x'

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		got[1] = 'y'
		again, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("ttl expiry", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
		require.NoError(t, store.Set(ctx, "forever", []byte("y"), 0))
		time.Sleep(30 * time.Millisecond)

		_, err := store.Get(ctx, "short")
		assert.ErrorIs(t, err, session.ErrNotFound)
		_, err = store.Get(ctx, "forever")
		assert.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("delete expired", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "a", []byte("x"), time.Millisecond))
		require.NoError(t, store.Set(ctx, "b", []byte("x"), time.Hour))
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, store.DeleteExpired(ctx))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("cleanup loop purges expired entries", func(t *testing.T) {
		store := session.NewMemoryStore(5 * time.Millisecond)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "a", []byte("x"), time.Millisecond))
		assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := session.NewMemoryStore(time.Millisecond)
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close())
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		defer store.Close()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				id := string(rune('a' + n))
				_ = store.Set(ctx, id, []byte("x"), time.Minute)
				_, _ = store.Get(ctx, id)
				_ = store.Delete(ctx, id)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 0, store.Len())
	})
}
