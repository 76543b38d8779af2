// ABOUTME: Daily record CRUD operations for SQL storage.
// ABOUTME: Upserts replace by date and append at the end of the seq order.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlog/internal/models"
)

const recordColumns = `id, date, sport, exercise_minutes, sleep_hours, sleep_quality, notes, created_at`

// UpsertRecord stores r, replacing any existing record for the same date.
func (d *DB) UpsertRecord(r *models.DailyRecord) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(d.rebind(`DELETE FROM records WHERE date = ?`), r.Date); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	query := d.rebind(`INSERT INTO records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = tx.Exec(query,
		r.ID.String(),
		r.Date,
		r.Sport,
		r.ExerciseMinutes,
		r.SleepHours,
		r.SleepQuality,
		r.Notes,
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// GetRecord retrieves the record for a date.
func (d *DB) GetRecord(date string) (*models.DailyRecord, error) {
	query := d.rebind(`SELECT ` + recordColumns + ` FROM records WHERE date = ?`)
	r, err := scanRecord(d.db.QueryRow(query, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, date)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

// ListRecords retrieves records in store order, keeping the trailing limit.
func (d *DB) ListRecords(limit int) ([]*models.DailyRecord, error) {
	var query string
	var args []interface{}

	if limit > 0 {
		query = `
			SELECT ` + recordColumns + ` FROM (
				SELECT seq, ` + recordColumns + ` FROM records ORDER BY seq DESC LIMIT ?
			) recent
			ORDER BY seq ASC
		`
		args = append(args, limit)
	} else {
		query = `SELECT ` + recordColumns + ` FROM records ORDER BY seq ASC`
	}

	rows, err := d.db.Query(d.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*models.DailyRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRecord removes the record for a date.
func (d *DB) DeleteRecord(date string) error {
	result, err := d.db.Exec(d.rebind(`DELETE FROM records WHERE date = ?`), date)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	return nil
}

// ClearAll deletes every record.
func (d *DB) ClearAll() (int, error) {
	result, err := d.db.Exec(`DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	return int(affected), nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*models.DailyRecord, error) {
	var r models.DailyRecord
	var idStr, createdAt string
	var notes sql.NullString

	err := row.Scan(&idStr, &r.Date, &r.Sport, &r.ExerciseMinutes, &r.SleepHours, &r.SleepQuality, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	r.ID, _ = uuid.Parse(idStr)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		r.Notes = &notes.String
	}
	return &r, nil
}
