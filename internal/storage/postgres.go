// ABOUTME: Postgres backend for the record store using lib/pq.
// ABOUTME: Shares the SQL code path with SQLite via $n placeholder rebinding.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// OpenPostgres connects to Postgres using dsn and ensures the schema exists.
func OpenPostgres(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open postgres: dsn is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	d, err := NewPostgresDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// NewPostgresDB wraps an existing Postgres connection.
func NewPostgresDB(db *sql.DB) (*DB, error) {
	d := &DB{db: db, dialect: postgresDialect}
	if err := d.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return d, nil
}
