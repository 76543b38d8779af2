// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, Markdown, and XLSX export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func seedRecords(t *testing.T, repo Repository) {
	t.Helper()
	rows := []*models.DailyRecord{
		models.NewDailyRecord("2025-03-01", "run", 30, 7.5, 4).WithNotes("easy | steady"),
		models.NewDailyRecord("2025-03-02", "", 0, 8, 5),
		models.NewDailyRecord("2025-03-03", "swim", 45, 6.5, 3),
	}
	for _, r := range rows {
		if err := repo.UpsertRecord(r); err != nil {
			t.Fatalf("UpsertRecord failed: %v", err)
		}
	}
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedRecords(t, db)

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "fitlog" {
		t.Errorf("Expected tool fitlog, got %s", export.Tool)
	}
	if len(export.Records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(export.Records))
	}
	if export.Records[2].Date != "2025-03-03" {
		t.Errorf("Expected store order preserved, last = %s", export.Records[2].Date)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedRecords(t, db)

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if yamlData["tool"] != "fitlog" {
		t.Errorf("Expected tool fitlog, got %v", yamlData["tool"])
	}
	records, ok := yamlData["records"].([]interface{})
	if !ok {
		t.Fatalf("Expected records to be a list")
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedRecords(t, db)

	md, err := ExportMarkdown(db, "")
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "# Fitlog Export") {
		t.Error("Expected markdown header")
	}
	if !strings.Contains(md, "| 2025-03-02 | rest | 0 |") {
		t.Error("Expected rest day row")
	}
	if !strings.Contains(md, `easy \| steady`) {
		t.Error("Expected escaped pipe in notes")
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := setupTestDB(t)
	seedRecords(t, db)

	md, err := ExportMarkdown(db, "2025-03-02")
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if strings.Contains(md, "2025-03-01") {
		t.Error("Expected rows before since to be filtered out")
	}
	if !strings.Contains(md, "2025-03-03") {
		t.Error("Expected recent row")
	}
}

func TestExportXLSX(t *testing.T) {
	db := setupTestDB(t)
	seedRecords(t, db)

	data, err := ExportXLSX(db)
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != XLSXSheetName {
		t.Errorf("sheets = %v, want [%s]", sheets, XLSXSheetName)
	}

	rows, err := f.GetRows(XLSXSheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" {
		t.Errorf("header A1 = %q, want Date", rows[0][0])
	}
	if rows[3][0] != "2025-03-03" || rows[3][1] != "swim" || rows[3][2] != "45" {
		t.Errorf("last row = %v, want 2025-03-03/swim/45", rows[3])
	}
}

func TestImportJSON(t *testing.T) {
	src := setupTestDB(t)
	seedRecords(t, src)

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	n, err := ImportJSON(dst, data)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 3 {
		t.Errorf("imported = %d, want 3", n)
	}

	got, err := dst.GetRecord("2025-03-01")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.Notes == nil || *got.Notes != "easy | steady" {
		t.Errorf("Notes = %v, want 'easy | steady'", got.Notes)
	}

	// Importing again replaces by date rather than duplicating.
	if _, err := ImportJSON(dst, data); err != nil {
		t.Fatalf("second ImportJSON failed: %v", err)
	}
	records, _ := dst.ListRecords(0)
	if len(records) != 3 {
		t.Errorf("len after re-import = %d, want 3", len(records))
	}
}

func TestImportJSONRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)

	if _, err := ImportJSON(db, []byte("not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	bad := `{"version":"1.0","records":[{"date":"03/01/2025","exercise_minutes":30,"sleep_hours":7,"sleep_quality":4}]}`
	if _, err := ImportJSON(db, []byte(bad)); err == nil {
		t.Error("Expected validation error for bad date")
	}
	records, _ := db.ListRecords(0)
	if len(records) != 0 {
		t.Errorf("Expected nothing imported, got %d", len(records))
	}
}
