package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// DB is the part of *pgxpool.Pool (or pgx.Tx) used by Store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	getSessionQuery = `SELECT value FROM sessions
WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)`

	upsertSessionQuery = `INSERT INTO sessions (id, value, expires_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
    value = EXCLUDED.value,
    expires_at = EXCLUDED.expires_at,
    updated_at = EXCLUDED.updated_at`

	deleteSessionQuery = `DELETE FROM sessions WHERE id = $1`

	deleteExpiredQuery = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`
)

// Store keeps sessions in the sessions table created by Migrate.
type Store struct {
	db  DB
	now func() time.Time
}

var _ session.Store = (*Store)(nil)

// NewStore creates a store on db.
func NewStore(db DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get returns session.ErrNotFound for missing or expired rows.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, getSessionQuery, id, s.now()).Scan(&value)
	if IsNotFoundError(err) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set upserts the row, replacing the whole value.
func (s *Store) Set(ctx context.Context, id string, value []byte, ttl time.Duration) error {
	now := s.now()
	_, err := s.db.Exec(ctx, upsertSessionQuery, id, value, expiresAt(now, ttl), now)
	return err
}

// Delete removes the row. Missing rows are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, deleteSessionQuery, id)
	return err
}

// DeleteExpired purges expired rows and returns how many were removed.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteExpiredQuery, s.now())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// StartCleanup purges expired rows every interval until ctx is done.
func (s *Store) StartCleanup(ctx context.Context, interval time.Duration, log logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				log.ErrorContext(ctx, "failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				log.InfoContext(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}

// expiresAt returns nil (SQL NULL) for a zero ttl.
func expiresAt(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := now.Add(ttl)
	return &t
}
