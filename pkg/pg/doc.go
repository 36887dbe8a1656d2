// Package pg stores sessions in PostgreSQL through github.com/jackc/pgx/v5.
//
// Migrate applies the embedded goose migrations that create the sessions
// table (id text primary key, value jsonb, expires_at timestamptz). Store
// implements session.Store with an INSERT ... ON CONFLICT DO UPDATE upsert,
// so every Set fully replaces the stored value. Expired rows are filtered on
// read and purged by DeleteExpired, which StartCleanup runs periodically.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	store := pg.NewStore(pool)
//	go store.StartCleanup(ctx, cfg.CleanupInterval, log)
package pg
