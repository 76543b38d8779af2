// ABOUTME: Export and import functionality for journal data.
// ABOUTME: Supports JSON, YAML, Markdown, and XLSX export formats on any backend.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for journal data.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Records    []*models.DailyRecord `json:"records" yaml:"records"`
}

func newExportData(records []*models.DailyRecord) *ExportData {
	if records == nil {
		records = []*models.DailyRecord{}
	}
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fitlog",
		Records:    records,
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	records, err := d.ListRecords(0)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return newExportData(records), nil
}

// ImportData upserts every record from an export file.
func (d *DB) ImportData(data *ExportData) error {
	for _, r := range data.Records {
		if err := d.UpsertRecord(r); err != nil {
			return fmt.Errorf("import record %s: %w", r.Date, err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string       `yaml:"version"`
		ExportedAt string       `yaml:"exported_at"`
		Tool       string       `yaml:"tool"`
		Records    []yamlRecord `yaml:"records"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Records:    make([]yamlRecord, 0, len(data.Records)),
	}

	for _, r := range data.Records {
		yr := yamlRecord{
			ID:              r.ID.String()[:8],
			Date:            r.Date,
			Sport:           r.Sport,
			ExerciseMinutes: r.ExerciseMinutes,
			SleepHours:      r.SleepHours,
			SleepQuality:    r.SleepQuality,
		}
		if r.Notes != nil {
			yr.Notes = *r.Notes
		}
		yamlData.Records = append(yamlData.Records, yr)
	}

	return yaml.Marshal(yamlData)
}

type yamlRecord struct {
	ID              string  `yaml:"id"`
	Date            string  `yaml:"date"`
	Sport           string  `yaml:"sport,omitempty"`
	ExerciseMinutes float64 `yaml:"exercise_minutes"`
	SleepHours      float64 `yaml:"sleep_hours"`
	SleepQuality    float64 `yaml:"sleep_quality"`
	Notes           string  `yaml:"notes,omitempty"`
}

// ExportMarkdown exports records as a Markdown table.
// since, when non-empty, keeps only records dated on or after it.
func ExportMarkdown(repo Repository, since string) (string, error) {
	records, err := repo.ListRecords(0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Fitlog Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	sb.WriteString("| Date | Sport | Minutes | Sleep | Quality | Notes |\n")
	sb.WriteString("|------|-------|---------|-------|---------|-------|\n")

	for _, r := range records {
		if since != "" && r.Date < since {
			continue
		}
		sport := r.Sport
		if r.IsRestDay() {
			sport = "rest"
		}
		notes := ""
		if r.Notes != nil {
			notes = strings.ReplaceAll(*r.Notes, "|", "\\|")
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %.0f | %.1f h | %.0f/5 | %s |\n",
			r.Date, sport, r.ExerciseMinutes, r.SleepHours, r.SleepQuality, notes))
	}

	return sb.String(), nil
}

// XLSXSheetName is the worksheet holding exported records.
const XLSXSheetName = "Records"

var xlsxHeaders = []string{"Date", "Sport", "Exercise Minutes", "Sleep Hours", "Sleep Quality", "Notes", "ID"}

// ExportXLSX exports records as an Excel workbook with a styled header row.
func ExportXLSX(repo Repository) ([]byte, error) {
	records, err := repo.ListRecords(0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(XLSXSheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(XLSXSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(XLSXSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("set header style: %w", err)
		}
	}
	if err := f.SetColWidth(XLSXSheetName, "A", "A", 12); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(XLSXSheetName, "F", "F", 40); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	for i, r := range records {
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		values := []interface{}{r.Date, r.Sport, r.ExerciseMinutes, r.SleepHours, r.SleepQuality, notes, r.ID.String()}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(XLSXSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportJSON imports data from JSON bytes into repo.
func ImportJSON(repo Repository, data []byte) (int, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}
	for _, r := range exportData.Records {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("invalid record %s: %w", r.Date, err)
		}
	}
	if err := repo.ImportData(&exportData); err != nil {
		return 0, err
	}
	return len(exportData.Records), nil
}
