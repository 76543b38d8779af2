// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-json, csv-to-sqlite, and order preservation.
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/fitlog/internal/models"
)

func TestMigrateDataSQLiteToJSON(t *testing.T) {
	src := setupTestDB(t)
	seedRecords(t, src)

	dst, err := NewJSONStore(filepath.Join(t.TempDir(), "records.json"), nil)
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Records != 3 {
		t.Errorf("Records = %d, want 3", summary.Records)
	}

	srcRecords, _ := src.ListRecords(0)
	dstRecords, _ := dst.ListRecords(0)
	if got, want := dates(dstRecords), dates(srcRecords); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	for i := range srcRecords {
		if !dstRecords[i].SameValues(srcRecords[i]) {
			t.Errorf("record %d = %+v, want %+v", i, dstRecords[i], srcRecords[i])
		}
	}
}

func TestMigrateDataCSVToSQLite(t *testing.T) {
	src, err := NewCSVStore(filepath.Join(t.TempDir(), "records.csv"), nil)
	if err != nil {
		t.Fatalf("NewCSVStore failed: %v", err)
	}
	r := models.NewDailyRecord("2025-03-05", "yoga", 25, 9, 5).WithNotes("evening, stretched")
	if err := src.UpsertRecord(r); err != nil {
		t.Fatalf("UpsertRecord failed: %v", err)
	}

	dst := setupTestDB(t)
	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Records != 1 {
		t.Errorf("Records = %d, want 1", summary.Records)
	}

	got, err := dst.GetRecord("2025-03-05")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if !got.SameValues(r) {
		t.Errorf("record = %+v, want %+v", got, r)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(setupTestDB(t), setupTestDB(t))
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Records != 0 {
		t.Errorf("Records = %d, want 0", summary.Records)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || empty {
		t.Errorf("missing dir = (%v, %v), want (false, nil)", empty, err)
	}

	empty, err = IsDirNonEmpty(dir)
	if err != nil || empty {
		t.Errorf("empty dir = (%v, %v), want (false, nil)", empty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	nonEmpty, err := IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("non-empty dir = (%v, %v), want (true, nil)", nonEmpty, err)
	}
}
