// ABOUTME: Plain-text digest of recent entries for the LLM coach.
// ABOUTME: Only headline numbers and trailing rows, never the report struct.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
)

// Digest renders the recent window and headline numbers as plain text for
// an external summarizer. It never includes more than window rows.
func Digest(records []*models.DailyRecord, report AnalysisReport) string {
	var sb strings.Builder

	window := TrailingWindow(records, report.Window)
	sb.WriteString(fmt.Sprintf("Exercise and sleep journal, last %d entries:\n", len(window)))
	for _, r := range window {
		sport := r.Sport
		if sport == "" {
			sport = "rest"
		}
		sb.WriteString(fmt.Sprintf("- %s: %s %.0f min, sleep %.1f h, quality %.0f/5",
			r.Date, sport, r.ExerciseMinutes, r.SleepHours, r.SleepQuality))
		if r.HasNotes() {
			sb.WriteString(fmt.Sprintf(", note: %s", *r.Notes))
		}
		sb.WriteString("\n")
	}

	if !report.HasScores() {
		sb.WriteString("\nNot enough entries for averages yet.\n")
		return sb.String()
	}

	agg := report.Aggregates
	sb.WriteString("\nAverages:\n")
	sb.WriteString(fmt.Sprintf("- exercise: %.1f min/day over %d active days, %d different sports (%s)\n",
		agg.AvgDuration, agg.ActiveDays, agg.SportVariety, report.ExerciseTier.Label))
	sb.WriteString(fmt.Sprintf("- sleep: %.1f h/night, quality %.1f/5 (%s)\n",
		agg.AvgSleep, agg.AvgQuality, report.SleepTier.Label))
	if report.Composite != nil {
		sb.WriteString(fmt.Sprintf("- composite score: %.1f/100 (%s)\n", report.Composite.Score, report.Composite.Band))
	}

	return sb.String()
}
