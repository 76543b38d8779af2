// ABOUTME: Repository interface for journal record storage.
// ABOUTME: Defines the upsert-by-date contract shared by every backend.
package storage

import (
	"errors"

	"github.com/harperreed/fitlog/internal/models"
)

// ErrNotFound is wrapped by every backend when a date has no record.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for daily records.
// Records are keyed by date; store order is the order of the most recent
// write for each date (oldest first).
type Repository interface {
	// UpsertRecord stores r, replacing any record with the same date.
	// The written record becomes the last one in store order.
	UpsertRecord(r *models.DailyRecord) error
	GetRecord(date string) (*models.DailyRecord, error)
	// ListRecords returns records in store order. limit > 0 keeps only the
	// trailing limit records.
	ListRecords(limit int) ([]*models.DailyRecord, error)
	// GetRecord and DeleteRecord wrap ErrNotFound for a missing date.
	DeleteRecord(date string) error
	// ClearAll deletes every record and returns how many were removed.
	ClearAll() (int, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// trailing returns the last limit records, or all of them when limit <= 0.
func trailing(records []*models.DailyRecord, limit int) []*models.DailyRecord {
	if limit <= 0 || limit >= len(records) {
		return records
	}
	return records[len(records)-limit:]
}

// upsertSlice removes any record sharing r's date and appends r.
func upsertSlice(records []*models.DailyRecord, r *models.DailyRecord) []*models.DailyRecord {
	out := make([]*models.DailyRecord, 0, len(records)+1)
	for _, existing := range records {
		if existing.Date != r.Date {
			out = append(out, existing)
		}
	}
	return append(out, r)
}
