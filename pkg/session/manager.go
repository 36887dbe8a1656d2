package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Manager runs the session lifecycle for every request passing through its middleware.
type Manager struct {
	store        Store
	config       Config
	cookies      *cookie.Manager
	resolveUser  UserResolverFunc
	verifyToken  TokenVerifierFunc
	logger       *slog.Logger
	errorHandler ErrorHandlerFunc
	newID        func() (string, error)
	now          func() time.Time
}

// New creates a new session manager backed by store.
// It panics when store is nil or the cookie secrets are invalid: both are
// programming errors that must stop the application at startup.
func New(store Store, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}

	m := &Manager{
		store:        store,
		config:       DefaultConfig(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		errorHandler: defaultErrorHandler,
		newID:        generateID,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	defaults := DefaultConfig()
	if m.config.CookieName == "" {
		m.config.CookieName = defaults.CookieName
	}
	if m.config.CookiePath == "" {
		m.config.CookiePath = defaults.CookiePath
	}
	if m.config.TokenHeader == "" {
		m.config.TokenHeader = defaults.TokenHeader
	}
	if m.config.TokenPrefix == "" && !m.config.RawToken {
		m.config.TokenPrefix = defaults.TokenPrefix
	}

	cookies, err := cookie.New(m.config.CookieSecrets,
		cookie.WithPath(m.config.CookiePath),
		cookie.WithDomain(m.config.CookieDomain),
		cookie.WithSecure(m.config.CookieSecure),
		cookie.WithHTTPOnly(m.config.CookieHTTPOnly),
		cookie.WithSameSite(m.config.CookieSameSite),
	)
	if err != nil {
		panic("session: invalid cookie configuration: " + err.Error())
	}
	m.cookies = cookies

	return m
}

// Config returns the effective configuration
func (m *Manager) Config() Config {
	return m.config
}

// load reads the session cookie and hydrates the request state.
func (m *Manager) load(ctx context.Context, r *http.Request) (*State, error) {
	id := m.readCookie(r)

	var rec *Record
	if id != "" {
		raw, err := m.store.Get(ctx, id)
		switch {
		case errors.Is(err, ErrNotFound):
			id = ""
		case err != nil:
			return nil, errors.Join(ErrStoreRead, err)
		default:
			rec, err = DecodeRecord(raw)
			if err != nil {
				return nil, err
			}
		}
	}

	if rec != nil && m.config.TrackUserAgent && rec.UserAgent != "" && rec.UserAgent != r.UserAgent() {
		m.logger.WarnContext(ctx, "session: user agent changed, forcing logout",
			logger.SessionID(id),
			logger.UserID(rec.UserID),
		)
		if err := m.store.Delete(ctx, id); err != nil {
			return nil, errors.Join(ErrStoreDelete, err)
		}
		id, rec = "", nil
	}

	if rec == nil {
		rec = NewRecord()
	}

	if id == "" {
		var err error
		if id, err = m.newID(); err != nil {
			return nil, err
		}
	}

	st := newState(m, id, rec)

	user, err := m.lookupUser(ctx, rec)
	if err != nil {
		return nil, err
	}
	st.user = user

	return st, nil
}

// save finalizes the request state: rotation, flash merge, persistence and cookie.
func (m *Manager) save(ctx context.Context, w http.ResponseWriter, r *http.Request, st *State) error {
	if st.needsRotation() {
		prev := st.issuedID
		if err := m.store.Delete(ctx, prev); err != nil {
			return errors.Join(ErrStoreDelete, err)
		}
		id, err := m.newID()
		if err != nil {
			return err
		}
		st.id, st.issuedID, st.rotate = id, id, false
		m.logger.DebugContext(ctx, "session: rotated", logger.SessionID(id), logger.UserID(st.record.UserID))
	}

	rec := st.record
	rec.Flash = mergeFlash(st.flash, st.consumed, st.staged)
	rec.LastSeenAt = m.now().UnixMilli()
	if m.config.TrackUserAgent {
		rec.UserAgent = r.UserAgent()
	}
	if m.config.TrackIP {
		rec.IP = m.clientIP(r)
	}

	value, err := EncodeRecord(rec)
	if err != nil {
		return errors.Join(ErrStoreWrite, err)
	}
	if err := m.store.Set(ctx, st.id, value, m.config.Expiry); err != nil {
		return errors.Join(ErrStoreWrite, err)
	}

	return m.writeCookie(w, st.id)
}

// lookupUser resolves the user of an authenticated record.
// The configured resolver wins over a store implementing UserResolver.
func (m *Manager) lookupUser(ctx context.Context, rec *Record) (any, error) {
	if !rec.IsAuthenticated() {
		return nil, nil
	}
	if m.resolveUser != nil {
		return m.resolveUser(ctx, rec.UserID, rec.Data)
	}
	if resolver, ok := m.store.(UserResolver); ok {
		return resolver.ResolveUser(ctx, rec.UserID)
	}
	return nil, nil
}

func (m *Manager) clientIP(r *http.Request) string {
	if m.config.IPHeader != "" {
		return clientip.FromHeader(r, m.config.IPHeader)
	}
	return clientip.GetIP(r)
}

// fail logs the error and hands the response over to the error handler.
func (m *Manager) fail(w http.ResponseWriter, r *http.Request, err error) {
	m.logger.ErrorContext(r.Context(), "session: request failed", logger.Error(err))
	m.errorHandler(w, r, err)
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// generateID creates a random (version 4) UUID session ID
func generateID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return id.String(), nil
}

func sessionAttrs(id, userID string) []any {
	return []any{logger.SessionID(id), logger.UserID(userID)}
}
