// ABOUTME: Data migration between fitlog storage backends.
// ABOUTME: Copies every record from source to destination in store order.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Records int
}

// MigrateData copies all records from src to dst storage.
// Records are upserted in source store order, so dst ends up with the
// same order when it starts empty.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	records, err := src.ListRecords(0)
	if err != nil {
		return nil, fmt.Errorf("list source records: %w", err)
	}

	for _, r := range records {
		if err := dst.UpsertRecord(r); err != nil {
			return nil, fmt.Errorf("upsert record %s: %w", r.Date, err)
		}
		summary.Records++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
