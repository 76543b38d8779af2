// ABOUTME: Tests for DailyRecord model and validation.
// ABOUTME: Validates constructor, builders, and input error reporting.
package models

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestNewDailyRecord(t *testing.T) {
	r := NewDailyRecord("2025-03-01", "  run ", 30, 7.5, 4)

	if r.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if r.Sport != "run" {
		t.Errorf("Sport = %q, want run", r.Sport)
	}
	if r.ExerciseMinutes != 30 {
		t.Errorf("ExerciseMinutes = %f, want 30", r.ExerciseMinutes)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if r.Notes != nil {
		t.Error("expected no notes")
	}
}

func TestWithNotes(t *testing.T) {
	r := NewDailyRecord("2025-03-01", "run", 30, 7.5, 4).WithNotes("felt strong")
	if !r.HasNotes() || *r.Notes != "felt strong" {
		t.Errorf("Notes = %v, want 'felt strong'", r.Notes)
	}

	r.WithNotes("   ")
	if r.HasNotes() {
		t.Error("expected blank notes to clear the field")
	}
}

func TestIsRestDay(t *testing.T) {
	tests := []struct {
		name    string
		sport   string
		minutes float64
		want    bool
	}{
		{"active", "run", 30, false},
		{"no sport", "", 30, true},
		{"zero minutes", "run", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDailyRecord("2025-03-01", tt.sport, tt.minutes, 8, 4)
			if got := r.IsRestDay(); got != tt.want {
				t.Errorf("IsRestDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		record    *DailyRecord
		wantField string
	}{
		{"valid", NewDailyRecord("2025-03-01", "run", 30, 7.5, 4), ""},
		{"valid rest day", NewDailyRecord("2025-03-01", "", 0, 8, 0), ""},
		{"missing date", NewDailyRecord("", "run", 30, 7.5, 4), "date"},
		{"bad date", NewDailyRecord("03/01/2025", "run", 30, 7.5, 4), "date"},
		{"negative minutes", NewDailyRecord("2025-03-01", "run", -5, 7.5, 4), "exercise_minutes"},
		{"negative sleep", NewDailyRecord("2025-03-01", "run", 30, -1, 4), "sleep_hours"},
		{"too much sleep", NewDailyRecord("2025-03-01", "run", 30, 25, 4), "sleep_hours"},
		{"quality too high", NewDailyRecord("2025-03-01", "run", 30, 7, 6), "sleep_quality"},
		{"nan minutes", NewDailyRecord("2025-03-01", "run", math.NaN(), 7, 3), "exercise_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2025-03-01", "2025-03-01", false},
		{"2025/03/01", "2025-03-01", false},
		{"2025.03.01", "2025-03-01", false},
		{"2025-03-01T08:00:00Z", "2025-03-01", false},
		{"01-03-2025", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	today, err := NormalizeDate("today")
	if err != nil {
		t.Fatalf("NormalizeDate(today) failed: %v", err)
	}
	if today != time.Now().Format(DateLayout) {
		t.Errorf("NormalizeDate(today) = %s", today)
	}
}

func TestSameValues(t *testing.T) {
	a := NewDailyRecord("2025-03-01", "run", 30, 7.5, 4).WithNotes("ok")
	b := NewDailyRecord("2025-03-01", "run", 30, 7.5, 4).WithNotes("ok")
	if !a.SameValues(b) {
		t.Error("expected records with equal fields to match")
	}
	b.WithNotes("different")
	if a.SameValues(b) {
		t.Error("expected records with different notes to differ")
	}
}

func TestRandomTip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		tip := RandomTip(r)
		found := false
		for _, known := range Tips {
			if tip == known {
				found = true
			}
		}
		if !found {
			t.Fatalf("RandomTip returned unknown tip %q", tip)
		}
	}
}
