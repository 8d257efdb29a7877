package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens dsn with the pure Go sqlite driver and wraps it in a
// Store. SQLite serialises writers, so the pool is limited to one connection.
func OpenSQLite(ctx context.Context, dsn string, options ...Option) (*Store, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlstore: open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("sqlstore: ping %s: %w", dsn, err)
	}

	store, err := New(db, options...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}
