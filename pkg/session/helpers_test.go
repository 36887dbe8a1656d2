package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// spyStore wraps MemoryStore, counting calls and optionally failing them.
type spyStore struct {
	*session.MemoryStore

	mu      sync.Mutex
	gets    int
	sets    int
	deletes int
	lastTTL time.Duration

	getErr    error
	setErr    error
	deleteErr error
}

func newSpyStore(t *testing.T) *spyStore {
	t.Helper()
	mem := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = mem.Close() })
	return &spyStore{MemoryStore: mem}
}

func (s *spyStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	s.gets++
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.MemoryStore.Get(ctx, id)
}

func (s *spyStore) Set(ctx context.Context, id string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.sets++
	s.lastTTL = ttl
	err := s.setErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.Set(ctx, id, value, ttl)
}

func (s *spyStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes++
	err := s.deleteErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.Delete(ctx, id)
}

func (s *spyStore) calls() (gets, sets, deletes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets, s.deletes
}

// has reports whether a record is stored under id.
func (s *spyStore) has(t *testing.T, id string) bool {
	t.Helper()
	_, err := s.MemoryStore.Get(context.Background(), id)
	if err != nil {
		require.ErrorIs(t, err, session.ErrNotFound)
		return false
	}
	return true
}

func (s *spyStore) record(t *testing.T, id string) *session.Record {
	t.Helper()
	raw, err := s.MemoryStore.Get(context.Background(), id)
	require.NoError(t, err)
	rec, err := session.DecodeRecord(raw)
	require.NoError(t, err)
	return rec
}

// browser replays the session cookie across requests like a user agent would.
type browser struct {
	t         *testing.T
	handler   http.Handler
	cookie    *http.Cookie
	userAgent string
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, handler: h}
}

func (b *browser) do(method, target string, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if b.cookie != nil {
		req.AddCookie(&http.Cookie{Name: b.cookie.Name, Value: b.cookie.Value})
	}
	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}
	for _, mod := range mods {
		mod(req)
	}

	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	if c := sessionCookie(rec, "sessionId"); c != nil {
		b.cookie = c
	}
	return rec
}

// sessionID returns the ID carried by the last session cookie received.
func (b *browser) sessionID() string {
	b.t.Helper()
	require.NotNil(b.t, b.cookie, "no session cookie received")
	return b.cookie.Value
}

func sessionCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// handlerFunc builds a handler that runs fn against the request's session state.
func handlerFunc(t *testing.T, fn func(w http.ResponseWriter, r *http.Request, st *session.State)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := session.FromContext(r.Context())
		require.True(t, ok, "session state missing from context")
		fn(w, r, st)
	}
}
