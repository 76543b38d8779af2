// ABOUTME: Tests for the composite score, clamping, and band mapping.
// ABOUTME: Includes monotonicity checks over each aggregate.
package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestComputeComposite_Values(t *testing.T) {
	tests := []struct {
		name      string
		agg       Aggregates
		wantScore float64
		wantBand  Band
	}{
		{
			name: "perfect week",
			agg:  Aggregates{AvgDuration: 60, ActiveDays: 7, SportVariety: 4, AvgSleep: 8, AvgQuality: 5},
			// sport = 100, sleep = 100
			wantScore: 100,
			wantBand:  BandExcellent,
		},
		{
			name: "typical week",
			// duration = 30/45*100 = 66.67; consistency = 5/7*100 = 71.43; variety = 50
			// sport = 33.33 + 21.43 + 10 = 64.76
			// sleep_duration = 7.5/8*100 = 93.75; quality = 80
			// sleep = 56.25 + 32 = 88.25
			// score = 38.86 + 35.3 = 74.16
			agg:       Aggregates{AvgDuration: 30, ActiveDays: 5, SportVariety: 2, AvgSleep: 7.5, AvgQuality: 4},
			wantScore: 74.2,
			wantBand:  BandGood,
		},
		{
			name: "nothing logged",
			agg:  Aggregates{},
			// sport = 0, sleep = 0
			wantScore: 0,
			wantBand:  BandStartingOut,
		},
		{
			name: "sleep only",
			// sport = 0; sleep = 100 -> score 40
			agg:       Aggregates{AvgSleep: 9, AvgQuality: 5},
			wantScore: 40,
			wantBand:  BandStartingOut,
		},
		{
			name: "developing",
			// duration = 20/45*100 = 44.44; consistency = 3/7*100 = 42.86; variety = 25
			// sport = 22.22 + 12.86 + 5 = 40.08
			// sleep = 87.5*0.6 + 60*0.4 = 52.5 + 24 = 76.5
			// score = 24.05 + 30.6 = 54.65
			agg:       Aggregates{AvgDuration: 20, ActiveDays: 3, SportVariety: 1, AvgSleep: 7, AvgQuality: 3},
			wantScore: 54.6,
			wantBand:  BandDeveloping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeComposite(tt.agg)
			assert.True(t, almostEqual(got.Score, tt.wantScore, 0.11),
				"Score = %.2f, want %.2f", got.Score, tt.wantScore)
			assert.Equal(t, tt.wantBand, got.Band)
		})
	}
}

func TestComputeComposite_SubScoresClamped(t *testing.T) {
	agg := Aggregates{AvgDuration: 500, ActiveDays: 30, SportVariety: 12, AvgSleep: 20, AvgQuality: 9}
	got := ComputeComposite(agg)

	assert.Equal(t, 100.0, got.DurationScore)
	assert.Equal(t, 100.0, got.ConsistencyScore)
	assert.Equal(t, 100.0, got.VarietyScore)
	assert.Equal(t, 100.0, got.SleepDurationScore)
	assert.Equal(t, 100.0, got.SleepQualityScore)
	assert.Equal(t, 100.0, got.Score)

	negative := ComputeComposite(Aggregates{AvgDuration: -30, AvgSleep: -2, AvgQuality: -1})
	assert.Equal(t, 0.0, negative.Score)
}

func TestComputeComposite_Monotonic(t *testing.T) {
	base := Aggregates{AvgDuration: 20, ActiveDays: 2, SportVariety: 1, AvgSleep: 6, AvgQuality: 2}

	bumps := map[string]func(a *Aggregates, step int){
		"avg_duration":  func(a *Aggregates, step int) { a.AvgDuration += float64(step) * 7 },
		"active_days":   func(a *Aggregates, step int) { a.ActiveDays += step },
		"sport_variety": func(a *Aggregates, step int) { a.SportVariety += step },
		"avg_sleep":     func(a *Aggregates, step int) { a.AvgSleep += float64(step) * 0.5 },
		"avg_quality":   func(a *Aggregates, step int) { a.AvgQuality += float64(step) * 0.5 },
	}

	for name, bump := range bumps {
		t.Run(name, func(t *testing.T) {
			prev := ComputeComposite(base).Score
			for step := 1; step <= 12; step++ {
				agg := base
				bump(&agg, step)
				score := ComputeComposite(agg).Score
				require.GreaterOrEqual(t, score, prev, "step %d decreased the score", step)
				require.LessOrEqual(t, score, 100.0)
				require.GreaterOrEqual(t, score, 0.0)
				prev = score
			}
		})
	}
}

func TestBandFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{100, BandExcellent},
		{85.1, BandExcellent},
		{85, BandGood},
		{70, BandGood},
		{69.9, BandDeveloping},
		{50, BandDeveloping},
		{49.9, BandStartingOut},
		{0, BandStartingOut},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bandFromScore(tt.score), "score %.1f", tt.score)
	}
}

func TestAnalyze_CompositeMode(t *testing.T) {
	alternating := make([]float64, 14)
	for i := range alternating {
		if i%2 == 0 {
			alternating[i] = 30
		}
	}

	tests := []struct {
		name            string
		window          int
		minutes         []float64
		sports          []string
		wantActive      int
		wantConsistency float64
		wantScore       float64
		wantBand        Band
	}{
		{
			// duration = 27.86/45 = 61.9; consistency = 71.4; variety = 75
			// sport = 30.95 + 21.43 + 15 = 67.38; sleep = 88.25
			// score = 40.43 + 35.3 = 75.7
			name:            "weekly",
			window:          DefaultWindow,
			minutes:         []float64{30, 0, 45, 30, 0, 60, 30},
			sports:          []string{"run", "", "swim", "run", "", "cycle", "run"},
			wantActive:      5,
			wantConsistency: 71.4,
			wantScore:       75.7,
			wantBand:        BandGood,
		},
		{
			// duration = 15/45 = 33.3; consistency = 7/7 = 100; variety = 25
			// sport = 16.67 + 30 + 5 = 51.67; sleep = 88.25
			// score = 31.0 + 35.3 = 66.3
			name:            "extended window measures consistency per week",
			window:          ExtendedWindow,
			minutes:         alternating,
			wantActive:      7,
			wantConsistency: 100,
			wantScore:       66.3,
			wantBand:        BandDeveloping,
		},
		{
			name:            "extended window clamps consistency",
			window:          ExtendedWindow,
			minutes:         repeat(30, 14),
			wantActive:      14,
			wantConsistency: 100,
			wantScore:       76.3,
			wantBand:        BandGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.minutes)
			records := makeRecords(tt.minutes, repeat(7.5, n), repeat(4, n), tt.sports...)

			report := New(Options{Window: tt.window, Mode: ModeComposite}).Analyze(records)

			require.NotNil(t, report.Composite)
			require.NotNil(t, report.Aggregates)
			assert.Equal(t, ModeComposite, report.Mode)
			assert.Equal(t, tt.window, report.Aggregates.WindowSize)
			assert.Equal(t, tt.wantActive, report.Aggregates.ActiveDays)
			assert.InDelta(t, tt.wantConsistency, report.Composite.ConsistencyScore, 0.05)
			assert.InDelta(t, tt.wantScore, report.Composite.Score, 0.11)
			assert.Equal(t, tt.wantBand, report.Composite.Band)
		})
	}
}
