// ABOUTME: Report types produced by the health score analyzer.
// ABOUTME: Tiers, aggregates, composite score, and status values.
package analyzer

import "math"

// Status describes whether a report carries computed results.
type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
)

// InsufficientDataMessage is reported when fewer than MinRecords entries exist.
const InsufficientDataMessage = "insufficient data — need at least 3 entries"

// TierLevel is a qualitative rating for exercise or sleep.
type TierLevel string

const (
	TierExcellent        TierLevel = "excellent"
	TierGoodHabit        TierLevel = "good_habit"
	TierIdeal            TierLevel = "ideal"
	TierGood             TierLevel = "good"
	TierNeedsImprovement TierLevel = "needs_improvement"
)

// Tier is a qualitative rating with its display label and canned remark.
type Tier struct {
	Level  TierLevel `json:"level"`
	Label  string    `json:"label"`
	Remark string    `json:"remark"`
}

// Band is a named range of the composite score.
type Band string

const (
	BandExcellent   Band = "excellent"
	BandGood        Band = "good"
	BandDeveloping  Band = "developing"
	BandStartingOut Band = "starting out"
)

// Aggregates are the descriptive statistics over the analysis window.
type Aggregates struct {
	AvgDuration  float64 `json:"avg_duration"`
	ActiveDays   int     `json:"active_days"`
	SportVariety int     `json:"sport_variety"`
	AvgSleep     float64 `json:"avg_sleep"`
	AvgQuality   float64 `json:"avg_quality"`
	NotedDays    int     `json:"noted_days"`
	WindowSize   int     `json:"window_size"`
	TotalRecords int     `json:"total_records"`
}

// Rounded returns a copy with averages rounded to one decimal place.
func (a Aggregates) Rounded() Aggregates {
	a.AvgDuration = round1(a.AvgDuration)
	a.AvgSleep = round1(a.AvgSleep)
	a.AvgQuality = round1(a.AvgQuality)
	return a
}

// Composite is the weighted 0-100 health index and its parts.
type Composite struct {
	Score              float64 `json:"score"`
	Band               Band    `json:"band"`
	SportScore         float64 `json:"sport_score"`
	SleepScore         float64 `json:"sleep_score"`
	DurationScore      float64 `json:"duration_score"`
	ConsistencyScore   float64 `json:"consistency_score"`
	VarietyScore       float64 `json:"variety_score"`
	SleepDurationScore float64 `json:"sleep_duration_score"`
	SleepQualityScore  float64 `json:"sleep_quality_score"`
}

// AnalysisReport is the result of one Analyze call.
// Aggregates, tiers and Composite are nil when Status is insufficient_data.
type AnalysisReport struct {
	Status       Status      `json:"status"`
	Message      string      `json:"message,omitempty"`
	Window       int         `json:"window"`
	Mode         Mode        `json:"mode"`
	Aggregates   *Aggregates `json:"aggregates,omitempty"`
	ExerciseTier *Tier       `json:"exercise_tier,omitempty"`
	SleepTier    *Tier       `json:"sleep_tier,omitempty"`
	Composite    *Composite  `json:"composite,omitempty"`
	Suggestions  []string    `json:"suggestions,omitempty"`
}

// HasScores reports whether the report carries computed results.
func (r AnalysisReport) HasScores() bool {
	return r.Status == StatusOK && r.Aggregates != nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
