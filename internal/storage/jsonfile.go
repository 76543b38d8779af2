// ABOUTME: Flat JSON file backend storing records as a single array.
// ABOUTME: Missing or corrupt files load as an empty collection.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/fitlog/internal/models"
	"go.uber.org/zap"
)

// Compile-time check that JSONStore implements Repository.
var _ Repository = (*JSONStore)(nil)

// JSONStore keeps every record in one JSON array file.
type JSONStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONStore returns a store backed by the JSON file at path.
func NewJSONStore(path string, logger *zap.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStore{path: path, logger: logger}, nil
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) load() []*models.DailyRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("read records file", zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var records []*models.DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("records file is corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return records
}

func (s *JSONStore) save(records []*models.DailyRecord) error {
	if records == nil {
		records = []*models.DailyRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// UpsertRecord stores r, replacing any record with the same date.
func (s *JSONStore) UpsertRecord(r *models.DailyRecord) error {
	if err := s.save(upsertSlice(s.load(), r)); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// GetRecord retrieves the record for a date.
func (s *JSONStore) GetRecord(date string) (*models.DailyRecord, error) {
	for _, r := range s.load() {
		if r.Date == date {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, date)
}

// ListRecords returns records in file order.
func (s *JSONStore) ListRecords(limit int) ([]*models.DailyRecord, error) {
	return trailing(s.load(), limit), nil
}

// DeleteRecord removes the record for a date.
func (s *JSONStore) DeleteRecord(date string) error {
	records := s.load()
	kept := records[:0]
	for _, r := range records {
		if r.Date != date {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	if err := s.save(kept); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// ClearAll removes every record.
func (s *JSONStore) ClearAll() (int, error) {
	n := len(s.load())
	if err := s.save(nil); err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	return n, nil
}

// GetAllData retrieves all data for export.
func (s *JSONStore) GetAllData() (*ExportData, error) {
	return newExportData(s.load()), nil
}

// ImportData upserts every record from an export.
func (s *JSONStore) ImportData(data *ExportData) error {
	records := s.load()
	for _, r := range data.Records {
		records = upsertSlice(records, r)
	}
	if err := s.save(records); err != nil {
		return fmt.Errorf("import records: %w", err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *JSONStore) Close() error {
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
