// ABOUTME: CSV file backend storing one record per row under a header.
// ABOUTME: Duplicate dates collapse to the last row; bad rows are skipped.
package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlog/internal/models"
	"go.uber.org/zap"
)

// Compile-time check that CSVStore implements Repository.
var _ Repository = (*CSVStore)(nil)

var csvHeader = []string{
	"id", "date", "sport", "exercise_minutes", "sleep_hours", "sleep_quality", "notes", "created_at",
}

// CSVStore keeps records in a CSV file with a header row.
type CSVStore struct {
	path   string
	logger *zap.Logger
}

// NewCSVStore returns a store backed by the CSV file at path.
func NewCSVStore(path string, logger *zap.Logger) (*CSVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{path: path, logger: logger}, nil
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) load() []*models.DailyRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("read records file", zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		s.logger.Warn("records file is corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	if !sameHeader(rows[0]) {
		s.logger.Warn("records file has unexpected header, starting empty",
			zap.String("path", s.path), zap.Strings("header", rows[0]))
		return nil
	}

	var records []*models.DailyRecord
	for i, row := range rows[1:] {
		r, err := parseCSVRow(row)
		if err != nil {
			s.logger.Warn("skipping bad row", zap.String("path", s.path), zap.Int("line", i+2), zap.Error(err))
			continue
		}
		records = upsertSlice(records, r)
	}
	return records
}

func (s *CSVStore) save(records []*models.DailyRecord) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(formatCSVRow(r)); err != nil {
			return fmt.Errorf("write row %s: %w", r.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

func sameHeader(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i := range row {
		if row[i] != csvHeader[i] {
			return false
		}
	}
	return true
}

func parseCSVRow(row []string) (*models.DailyRecord, error) {
	if len(row) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	nums := make([]float64, 3)
	for i, col := range []int{3, 4, 5} {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", csvHeader[col], err)
		}
		nums[i] = v
	}

	if row[1] == "" {
		return nil, fmt.Errorf("date is required")
	}
	r := models.NewDailyRecord(row[1], row[2], nums[0], nums[1], nums[2])
	if id, err := uuid.Parse(row[0]); err == nil {
		r.ID = id
	}
	r.WithNotes(row[6])
	if created, err := time.Parse(time.RFC3339, row[7]); err == nil {
		r.WithCreatedAt(created)
	}
	return r, nil
}

func formatCSVRow(r *models.DailyRecord) []string {
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}
	return []string{
		r.ID.String(),
		r.Date,
		r.Sport,
		strconv.FormatFloat(r.ExerciseMinutes, 'f', -1, 64),
		strconv.FormatFloat(r.SleepHours, 'f', -1, 64),
		strconv.FormatFloat(r.SleepQuality, 'f', -1, 64),
		notes,
		r.CreatedAt.Format(time.RFC3339),
	}
}

// UpsertRecord stores r, replacing any record with the same date.
func (s *CSVStore) UpsertRecord(r *models.DailyRecord) error {
	if err := s.save(upsertSlice(s.load(), r)); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// GetRecord retrieves the record for a date.
func (s *CSVStore) GetRecord(date string) (*models.DailyRecord, error) {
	for _, r := range s.load() {
		if r.Date == date {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, date)
}

// ListRecords returns records in file order.
func (s *CSVStore) ListRecords(limit int) ([]*models.DailyRecord, error) {
	return trailing(s.load(), limit), nil
}

// DeleteRecord removes the record for a date.
func (s *CSVStore) DeleteRecord(date string) error {
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

// ClearAll removes every record, leaving only the header.
func (s *CSVStore) ClearAll() (int, error) {
	n := len(s.load())
	if err := s.save(nil); err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	return n, nil
}

// GetAllData retrieves all data for export.
func (s *CSVStore) GetAllData() (*ExportData, error) {
	return newExportData(s.load()), nil
}

// ImportData upserts every record from an export.
func (s *CSVStore) ImportData(data *ExportData) error {
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
func (s *CSVStore) Close() error {
	return nil
}
