// ABOUTME: DailyRecord model for the exercise and sleep journal.
// ABOUTME: One record per calendar date; the date is the natural key.
package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical on-disk and wire format of a record date.
const DateLayout = "2006-01-02"

// Sleep quality bounds. Zero is accepted and means "not rated".
const (
	MinSleepQuality = 0
	MaxSleepQuality = 5
)

// DailyRecord is one day of exercise and sleep data.
type DailyRecord struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	Sport           string    `json:"sport"`
	ExerciseMinutes float64   `json:"exercise_minutes"`
	SleepHours      float64   `json:"sleep_hours"`
	SleepQuality    float64   `json:"sleep_quality"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewDailyRecord creates a DailyRecord with a generated UUID and current timestamp.
func NewDailyRecord(date, sport string, exerciseMinutes, sleepHours, sleepQuality float64) *DailyRecord {
	return &DailyRecord{
		ID:              uuid.New(),
		Date:            date,
		Sport:           strings.TrimSpace(sport),
		ExerciseMinutes: exerciseMinutes,
		SleepHours:      sleepHours,
		SleepQuality:    sleepQuality,
		CreatedAt:       time.Now(),
	}
}

// WithNotes sets the journal note. An empty string clears it.
func (r *DailyRecord) WithNotes(notes string) *DailyRecord {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		r.Notes = nil
		return r
	}
	r.Notes = &notes
	return r
}

// WithCreatedAt sets a custom creation timestamp.
func (r *DailyRecord) WithCreatedAt(t time.Time) *DailyRecord {
	r.CreatedAt = t
	return r
}

// IsRestDay reports whether no activity was logged for the day.
func (r *DailyRecord) IsRestDay() bool {
	return r.Sport == "" || r.ExerciseMinutes <= 0
}

// HasNotes reports whether the record carries a non-empty journal note.
func (r *DailyRecord) HasNotes() bool {
	return r.Notes != nil && strings.TrimSpace(*r.Notes) != ""
}

// Time parses the record date. The zero time is returned for malformed dates.
func (r *DailyRecord) Time() time.Time {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SameValues reports whether two records hold the same user-entered data,
// ignoring ID and CreatedAt.
func (r *DailyRecord) SameValues(o *DailyRecord) bool {
	if r.Date != o.Date || r.Sport != o.Sport ||
		r.ExerciseMinutes != o.ExerciseMinutes ||
		r.SleepHours != o.SleepHours ||
		r.SleepQuality != o.SleepQuality {
		return false
	}
	return r.HasNotes() == o.HasNotes() && (!r.HasNotes() || *r.Notes == *o.Notes)
}

// ValidationError reports a missing or malformed field in user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the record for input errors.
func (r *DailyRecord) Validate() error {
	if r.Date == "" {
		return &ValidationError{Field: "date", Message: "is required"}
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return &ValidationError{Field: "date", Message: fmt.Sprintf("must be YYYY-MM-DD, got %q", r.Date)}
	}

	numbers := []struct {
		field string
		value float64
	}{
		{"exercise_minutes", r.ExerciseMinutes},
		{"sleep_hours", r.SleepHours},
		{"sleep_quality", r.SleepQuality},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &ValidationError{Field: n.field, Message: "must be a finite number"}
		}
		if n.value < 0 {
			return &ValidationError{Field: n.field, Message: "must not be negative"}
		}
	}

	if r.SleepHours > 24 {
		return &ValidationError{Field: "sleep_hours", Message: "must not exceed 24"}
	}
	if r.SleepQuality > MaxSleepQuality {
		return &ValidationError{Field: "sleep_quality", Message: fmt.Sprintf("must be between %d and %d", MinSleepQuality, MaxSleepQuality)}
	}
	return nil
}

// NormalizeDate accepts a few common date spellings and returns YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return time.Now().Format(DateLayout), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(DateLayout), nil
	}

	formats := []string{
		DateLayout,
		"2006/01/02",
		"2006.01.02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", &ValidationError{Field: "date", Message: fmt.Sprintf("unrecognized date %q", s)}
}
