package session

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// extractToken reads the bearer token from the configured header.
// With a prefix configured, a header value lacking it does not match.
func (m *Manager) extractToken(r *http.Request) (string, bool) {
	value := r.Header.Get(m.config.TokenHeader)
	if value == "" {
		return "", false
	}

	if !m.config.RawToken && m.config.TokenPrefix != "" {
		token, ok := strings.CutPrefix(value, m.config.TokenPrefix)
		if !ok {
			return "", false
		}
		value = token
	}

	if value == "" {
		return "", false
	}
	return value, true
}

// authenticateToken runs the stateless branch. It returns false when the
// request must fall through to cookie sessions.
func (m *Manager) authenticateToken(r *http.Request) (*State, bool) {
	if m.verifyToken == nil {
		return nil, false
	}

	token, ok := m.extractToken(r)
	if !ok {
		return nil, false
	}

	user, err := m.verifyToken(r.Context(), token)
	if err != nil || user == nil {
		m.logger.DebugContext(r.Context(), "session: bearer token rejected", logger.Error(err))
		return nil, false
	}

	return newStatelessState(user), true
}
