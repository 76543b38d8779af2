// ABOUTME: Daily record operations for Charm KV storage.
// ABOUTME: Keys are record:<date>; store order follows each key's last write time.
package charm

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

// Compile-time check that Client implements storage.Repository.
var _ storage.Repository = (*Client)(nil)

// storedRecord wraps a record with the time it was last written.
type storedRecord struct {
	WrittenAt time.Time           `json:"written_at"`
	Record    *models.DailyRecord `json:"record"`
}

// recordKey returns the KV key for a date.
func recordKey(date string) string {
	return RecordPrefix + date
}

// nextWriteTime returns a timestamp strictly after every earlier write.
func (c *Client) nextWriteTime() time.Time {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	now := time.Now().UTC()
	if !now.After(c.lastWrite) {
		now = c.lastWrite.Add(time.Nanosecond)
	}
	c.lastWrite = now
	return now
}

// UpsertRecord stores r under its date, replacing any existing record.
func (c *Client) UpsertRecord(r *models.DailyRecord) error {
	data, err := json.Marshal(storedRecord{WrittenAt: c.nextWriteTime(), Record: r})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := c.set(recordKey(r.Date), data); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// GetRecord retrieves the record for a date.
func (c *Client) GetRecord(date string) (*models.DailyRecord, error) {
	records, err := c.loadRecords()
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	for _, r := range records {
		if r.Date == date {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, date)
}

// ListRecords returns records in write order, keeping the trailing limit.
func (c *Client) ListRecords(limit int) ([]*models.DailyRecord, error) {
	records, err := c.loadRecords()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

// DeleteRecord removes the record for a date.
func (c *Client) DeleteRecord(date string) error {
	keys, err := c.keysByPrefix(recordKey(date))
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	var exact []string
	for _, k := range keys {
		if extractKey(k, RecordPrefix) == date {
			exact = append(exact, k)
		}
	}
	if len(exact) == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, date)
	}

	if _, err := c.deleteKeys(exact); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// ClearAll deletes every record key.
func (c *Client) ClearAll() (int, error) {
	keys, err := c.keysByPrefix(RecordPrefix)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	n, err := c.deleteKeys(keys)
	if err != nil {
		return n, fmt.Errorf("clear records: %w", err)
	}
	return n, nil
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	records, err := c.ListRecords(0)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.DailyRecord{}
	}
	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fitlog",
		Records:    records,
	}, nil
}

// ImportData upserts every record from an export.
func (c *Client) ImportData(data *storage.ExportData) error {
	for _, r := range data.Records {
		if err := c.UpsertRecord(r); err != nil {
			return fmt.Errorf("import record %s: %w", r.Date, err)
		}
	}
	return nil
}

// loadRecords reads every record and sorts by write time.
func (c *Client) loadRecords() ([]*models.DailyRecord, error) {
	entries, err := c.listByPrefix(RecordPrefix)
	if err != nil {
		return nil, err
	}

	stored := make([]*storedRecord, 0, len(entries))
	for _, e := range entries {
		sr, err := unmarshalJSON[storedRecord](e.value)
		if err != nil || sr.Record == nil {
			continue // Skip invalid entries
		}
		if sr.Record.Date == "" {
			sr.Record.Date = extractKey(e.key, RecordPrefix)
		}
		stored = append(stored, sr)
	}

	sort.SliceStable(stored, func(i, j int) bool {
		if !stored[i].WrittenAt.Equal(stored[j].WrittenAt) {
			return stored[i].WrittenAt.Before(stored[j].WrittenAt)
		}
		return stored[i].Record.Date < stored[j].Record.Date
	})

	records := make([]*models.DailyRecord, len(stored))
	for i, sr := range stored {
		records[i] = sr.Record
	}
	return records, nil
}
