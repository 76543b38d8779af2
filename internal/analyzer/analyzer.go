// ABOUTME: Rule-based health score analyzer over a trailing window of records.
// ABOUTME: Pure computation: averages, tiers, suggestions, optional composite score.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
)

const (
	// MinRecords is the cold-start guard: fewer records yield no scores.
	MinRecords = 3
	// DefaultWindow is the canonical "recent week" window.
	DefaultWindow = 7
	// ExtendedWindow is the optional two-week window.
	ExtendedWindow = 14
)

// Exercise and sleep thresholds.
const (
	exerciseExcellentAbove = 45.0
	exerciseGoodAbove      = 25.0
	sleepIdealHours        = 7.5
	sleepIdealQuality      = 4.0
	sleepGoodHours         = 7.0
)

// Mode selects how much the analyzer computes.
type Mode string

const (
	ModeBasic     Mode = "basic"
	ModeComposite Mode = "composite"
)

// ParseMode converts a config or flag value to a Mode. Empty means basic.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeBasic:
		return ModeBasic, nil
	case ModeComposite, "advanced":
		return ModeComposite, nil
	default:
		return "", fmt.Errorf("unknown analysis mode: %q (use basic or composite)", s)
	}
}

// Options parameterize an Analyzer.
type Options struct {
	Window int
	Mode   Mode
}

// Analyzer turns a sequence of daily records into an AnalysisReport.
// It holds no state between calls and is safe for concurrent use.
type Analyzer struct {
	window int
	mode   Mode
}

// New creates an Analyzer. Non-positive windows fall back to DefaultWindow.
func New(opts Options) *Analyzer {
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeBasic
	}
	return &Analyzer{window: window, mode: mode}
}

// Window returns the configured trailing window size.
func (a *Analyzer) Window() int {
	return a.window
}

// Mode returns the configured scoring mode.
func (a *Analyzer) Mode() Mode {
	return a.mode
}

// Analyze evaluates records in store order and returns a report.
func Analyze(records []*models.DailyRecord) AnalysisReport {
	return New(Options{}).Analyze(records)
}

// Analyze evaluates the trailing window of records in store order.
func (a *Analyzer) Analyze(records []*models.DailyRecord) AnalysisReport {
	report := AnalysisReport{
		Window: a.window,
		Mode:   a.mode,
	}

	if len(records) < MinRecords {
		report.Status = StatusInsufficientData
		report.Message = InsufficientDataMessage
		return report
	}

	window := TrailingWindow(records, a.window)
	agg := aggregate(window)
	agg.TotalRecords = len(records)

	exercise := exerciseTier(agg.AvgDuration)
	sleep := sleepTier(agg.AvgSleep, agg.AvgQuality)
	rounded := agg.Rounded()

	report.Status = StatusOK
	report.Aggregates = &rounded
	report.ExerciseTier = &exercise
	report.SleepTier = &sleep
	report.Suggestions = suggestions(agg)

	if a.mode == ModeComposite {
		c := ComputeComposite(agg)
		report.Composite = &c
	}

	return report
}

// TrailingWindow returns the last min(len(records), n) records.
func TrailingWindow(records []*models.DailyRecord, n int) []*models.DailyRecord {
	if n <= 0 || n >= len(records) {
		return records
	}
	return records[len(records)-n:]
}

// aggregate computes raw (unrounded) statistics over the window.
func aggregate(window []*models.DailyRecord) Aggregates {
	agg := Aggregates{WindowSize: len(window)}
	if len(window) == 0 {
		return agg
	}

	var minutes, sleep, quality float64
	sports := make(map[string]struct{})
	for _, r := range window {
		minutes += r.ExerciseMinutes
		sleep += r.SleepHours
		quality += r.SleepQuality
		if r.ExerciseMinutes > 0 {
			agg.ActiveDays++
		}
		if s := strings.ToLower(strings.TrimSpace(r.Sport)); s != "" {
			sports[s] = struct{}{}
		}
		if r.HasNotes() {
			agg.NotedDays++
		}
	}

	n := float64(len(window))
	agg.AvgDuration = minutes / n
	agg.AvgSleep = sleep / n
	agg.AvgQuality = quality / n
	agg.SportVariety = len(sports)
	return agg
}

func exerciseTier(avgDuration float64) Tier {
	switch {
	case avgDuration > exerciseExcellentAbove:
		return Tier{
			Level:  TierExcellent,
			Label:  "abundant/excellent",
			Remark: "Your exercise volume is abundant. Keep it up!",
		}
	case avgDuration > exerciseGoodAbove:
		return Tier{
			Level:  TierGoodHabit,
			Label:  "good habit",
			Remark: "You have a good exercise habit. Keep going!",
		}
	default:
		return Tier{
			Level:  TierNeedsImprovement,
			Label:  "needs improvement",
			Remark: "Try to gradually increase how often you exercise.",
		}
	}
}

func sleepTier(avgSleep, avgQuality float64) Tier {
	switch {
	case avgSleep >= sleepIdealHours && avgQuality >= sleepIdealQuality:
		return Tier{
			Level:  TierIdeal,
			Label:  "ideal",
			Remark: "Your sleep is in ideal shape!",
		}
	case avgSleep >= sleepGoodHours:
		return Tier{
			Level:  TierGood,
			Label:  "good",
			Remark: "Your sleep is in good condition.",
		}
	default:
		return Tier{
			Level:  TierNeedsImprovement,
			Label:  "needs improvement, target 7+ hours",
			Remark: "Aim for at least 7 hours of sleep each night.",
		}
	}
}

// suggestions derives free-text advice from simple threshold checks.
func suggestions(agg Aggregates) []string {
	var out []string

	if agg.SportVariety < 2 {
		out = append(out, "Try new sports to add variety to your training.")
	}
	if agg.AvgSleep < sleepGoodHours {
		out = append(out, "Aim for 7+ hours of sleep.")
	}
	// Fewer than 3 active days per week, scaled to the window length.
	if agg.WindowSize > 0 && float64(agg.ActiveDays)*7 < 3*float64(agg.WindowSize) {
		out = append(out, "Add more active days; at least 3 per week.")
	}
	if agg.AvgDuration <= exerciseGoodAbove {
		out = append(out, "Extend your sessions gradually toward 30 minutes or more.")
	}
	if agg.AvgQuality < 3 {
		out = append(out, "Improve your bedtime routine to raise sleep quality.")
	}
	if agg.NotedDays == 0 {
		out = append(out, "Keep a short journal note to track how you feel.")
	}

	return out
}
