// ABOUTME: Per-entry summaries comparing one day with the journal averages.
// ABOUTME: Backs the per_run endpoint and the show command.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
)

// EntrySummary is a rule-based remark about a single day compared with the
// journal as a whole.
type EntrySummary struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Sport      string   `json:"sport"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
}

// SummarizeEntry compares one record against the averages of all records.
func SummarizeEntry(r *models.DailyRecord, all []*models.DailyRecord) EntrySummary {
	s := EntrySummary{
		ID:    r.ID.String(),
		Date:  r.Date,
		Sport: r.Sport,
	}

	agg := aggregate(all)
	var parts []string

	if r.IsRestDay() {
		parts = append(parts, "Rest day")
	} else {
		parts = append(parts, fmt.Sprintf("%s for %.0f min", r.Sport, r.ExerciseMinutes))
		switch {
		case len(all) < 2:
		case r.ExerciseMinutes > agg.AvgDuration:
			s.Highlights = append(s.Highlights, fmt.Sprintf("%.0f min above your average session", r.ExerciseMinutes-agg.AvgDuration))
		case r.ExerciseMinutes < agg.AvgDuration:
			s.Highlights = append(s.Highlights, fmt.Sprintf("%.0f min below your average session", agg.AvgDuration-r.ExerciseMinutes))
		}
		if r.ExerciseMinutes > exerciseExcellentAbove {
			s.Highlights = append(s.Highlights, "long session")
		}
	}

	parts = append(parts, fmt.Sprintf("slept %.1f h", r.SleepHours))
	if r.SleepQuality > 0 {
		parts[len(parts)-1] += fmt.Sprintf(" (quality %.0f/5)", r.SleepQuality)
	}

	switch {
	case r.SleepHours >= sleepIdealHours && r.SleepQuality >= sleepIdealQuality:
		s.Highlights = append(s.Highlights, "ideal night of sleep")
	case r.SleepHours < sleepGoodHours:
		s.Highlights = append(s.Highlights, "short on sleep")
	}

	if r.HasNotes() {
		parts = append(parts, fmt.Sprintf("note: %q", *r.Notes))
	}

	s.Summary = strings.Join(parts, ", ") + "."
	return s
}

// SummarizeAll summarizes every record in store order.
func SummarizeAll(records []*models.DailyRecord) []EntrySummary {
	out := make([]EntrySummary, 0, len(records))
	for _, r := range records {
		out = append(out, SummarizeEntry(r, records))
	}
	return out
}
