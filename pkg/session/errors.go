package session

import "errors"

var (
	// ErrNotFound indicates no record is stored under the session ID
	ErrNotFound = errors.New("session.not_found")

	// ErrMalformedRecord indicates a stored value matches neither the current nor the legacy shape
	ErrMalformedRecord = errors.New("session.malformed_record")

	// ErrIDGeneration indicates session ID generation failed
	ErrIDGeneration = errors.New("session.id_generation_failed")

	// ErrStateless indicates an operation that needs storage was called on a bearer-token request
	ErrStateless = errors.New("session.stateless")

	// ErrStoreRead indicates the store failed to load a record
	ErrStoreRead = errors.New("session.store_read_failed")

	// ErrStoreWrite indicates the store failed to persist a record
	ErrStoreWrite = errors.New("session.store_write_failed")

	// ErrStoreDelete indicates the store failed to delete a record
	ErrStoreDelete = errors.New("session.store_delete_failed")

	// ErrEmptyUserID indicates Login was called without a user identifier
	ErrEmptyUserID = errors.New("session.empty_user_id")
)
