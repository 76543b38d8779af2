// ABOUTME: SQL schema definitions for SQLite and Postgres.
// ABOUTME: One records table; seq preserves store order across upserts.
package storage

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		date TEXT NOT NULL UNIQUE,
		sport TEXT NOT NULL DEFAULT '',
		exercise_minutes REAL NOT NULL,
		sleep_hours REAL NOT NULL,
		sleep_quality REAL NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);
	`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS records (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL,
		date TEXT NOT NULL UNIQUE,
		sport TEXT NOT NULL DEFAULT '',
		exercise_minutes DOUBLE PRECISION NOT NULL,
		sleep_hours DOUBLE PRECISION NOT NULL,
		sleep_quality DOUBLE PRECISION NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);
	`
