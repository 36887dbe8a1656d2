package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDocument(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("no ttl never expires", func(t *testing.T) {
		doc := newSessionDocument("id", []byte("x"), 0, now)
		assert.Nil(t, doc.ExpiresAt)
		assert.False(t, doc.expired(now.Add(24*365*time.Hour)))
	})

	t.Run("ttl sets deadline", func(t *testing.T) {
		doc := newSessionDocument("id", []byte("x"), time.Minute, now)
		require.NotNil(t, doc.ExpiresAt)
		assert.Equal(t, now.Add(time.Minute), *doc.ExpiresAt)
		assert.False(t, doc.expired(now.Add(59*time.Second)))
		assert.True(t, doc.expired(now.Add(time.Minute)))
	})
}
