package session

import (
	"context"
	"errors"
)

// State is the request-scoped view of a session.
//
// Handlers obtain it with FromContext. Changes are persisted by the
// middleware once the handler returns. A State is not safe for concurrent
// use by several goroutines.
type State struct {
	manager *Manager
	record  *Record

	id       string
	issuedID string
	rotate   bool

	flash    map[string]any
	consumed map[string]struct{}
	staged   map[string]any

	user      any
	stateless bool
}

func newState(m *Manager, id string, rec *Record) *State {
	flash := rec.Flash
	if flash == nil {
		flash = make(map[string]any)
	}
	return &State{
		manager:  m,
		record:   rec,
		id:       id,
		issuedID: id,
		flash:    flash,
		consumed: make(map[string]struct{}),
		staged:   make(map[string]any),
	}
}

// newStatelessState is used for requests authenticated by a bearer token.
func newStatelessState(user any) *State {
	return &State{
		record:    NewRecord(),
		flash:     make(map[string]any),
		consumed:  make(map[string]struct{}),
		staged:    make(map[string]any),
		user:      user,
		stateless: true,
	}
}

// ID returns the session ID. Empty for stateless requests.
func (s *State) ID() string {
	return s.id
}

// SetID signals that the handler wants a new session ID.
// The value itself is never used: the middleware issues a fresh random ID
// and deletes the previous record. Prefer RequestRotation.
func (s *State) SetID(id string) {
	if s.stateless {
		return
	}
	s.id = id
}

// RequestRotation asks the middleware to move the session to a new ID when the request completes.
func (s *State) RequestRotation() {
	if s.stateless {
		return
	}
	s.rotate = true
}

// Stateless reports whether the request was authenticated by a bearer token
func (s *State) Stateless() bool {
	return s.stateless
}

// Data returns the session payload. Mutations apply in place.
func (s *State) Data() map[string]any {
	return s.record.Data
}

// Get retrieves a value from session data
func (s *State) Get(key string) (any, bool) {
	val, ok := s.record.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *State) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data.
// Numbers loaded from a store arrive as float64.
func (s *State) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Set stores a value in session data
func (s *State) Set(key string, value any) {
	s.record.Data[key] = value
}

// Delete removes a value from session data
func (s *State) Delete(key string) {
	delete(s.record.Data, key)
}

// Clear removes all data from the session
func (s *State) Clear() {
	clear(s.record.Data)
}

// UserID returns the authenticated user ID, if any
func (s *State) UserID() string {
	return s.record.UserID
}

// User returns the resolved user, if any
func (s *State) User() any {
	return s.user
}

// IsAuthenticated returns true if a user ID is set or a user was resolved
func (s *State) IsAuthenticated() bool {
	return s.record.UserID != "" || s.user != nil
}

// Flash returns a message set during a previous request and marks it consumed.
// Reading the same key again in this request returns the same value.
// Messages staged with SetFlash in this request are not visible here.
func (s *State) Flash(key string) (any, bool) {
	val, ok := s.flash[key]
	if ok {
		s.consumed[key] = struct{}{}
	}
	return val, ok
}

// SetFlash stages a message for the next request
func (s *State) SetFlash(key string, value any) {
	if s.stateless {
		return
	}
	s.staged[key] = value
}

// HasFlash reports whether key exists among previous or staged messages
func (s *State) HasFlash(key string) bool {
	if _, ok := s.flash[key]; ok {
		return true
	}
	_, ok := s.staged[key]
	return ok
}

// Login authenticates the session as userID.
// The current record is deleted and the session moves to a new ID. Data is
// replaced with the given payload (or emptied). Flash messages are kept.
func (s *State) Login(ctx context.Context, userID string, data map[string]any) error {
	if s.stateless {
		return ErrStateless
	}
	if userID == "" {
		return ErrEmptyUserID
	}

	if err := s.moveToNewID(ctx); err != nil {
		return err
	}

	if data == nil {
		data = make(map[string]any)
	}
	s.record.UserID = userID
	s.record.Data = data

	user, err := s.manager.lookupUser(ctx, s.record)
	if err != nil {
		return err
	}
	s.user = user

	s.manager.logger.DebugContext(ctx, "session: login", sessionAttrs(s.id, userID)...)
	return nil
}

// Logout deletes the current record and continues with a fresh empty session under a new ID.
func (s *State) Logout(ctx context.Context) error {
	if s.stateless {
		return ErrStateless
	}

	userID := s.record.UserID
	if err := s.moveToNewID(ctx); err != nil {
		return err
	}

	s.record = NewRecord()
	s.flash = make(map[string]any)
	s.consumed = make(map[string]struct{})
	s.staged = make(map[string]any)
	s.user = nil

	s.manager.logger.DebugContext(ctx, "session: logout", sessionAttrs(s.id, userID)...)
	return nil
}

// moveToNewID deletes the record under the engine-issued ID and assigns a fresh one.
func (s *State) moveToNewID(ctx context.Context) error {
	if err := s.manager.store.Delete(ctx, s.issuedID); err != nil {
		return errors.Join(ErrStoreDelete, err)
	}

	id, err := s.manager.newID()
	if err != nil {
		return err
	}

	s.id = id
	s.issuedID = id
	s.rotate = false
	return nil
}

// needsRotation reports whether the handler asked for a new ID, explicitly or by mutating it.
func (s *State) needsRotation() bool {
	return s.rotate || s.id != s.issuedID
}
