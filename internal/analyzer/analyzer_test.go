// ABOUTME: Tests for tier mapping, trailing windows, and suggestions.
// ABOUTME: Also exercises the documented week scenario end to end.
package analyzer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/fitlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRecords builds consecutive-day records from parallel slices.
func makeRecords(minutes, sleep, quality []float64, sports ...string) []*models.DailyRecord {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*models.DailyRecord, 0, len(minutes))
	for i := range minutes {
		sport := "run"
		if i < len(sports) {
			sport = sports[i]
		}
		date := start.AddDate(0, 0, i).Format(models.DateLayout)
		out = append(out, models.NewDailyRecord(date, sport, minutes[i], sleep[i], quality[i]))
	}
	return out
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAnalyze_InsufficientData(t *testing.T) {
	for n := 0; n < MinRecords; n++ {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			records := makeRecords(repeat(90, n), repeat(9, n), repeat(5, n))

			report := New(Options{Mode: ModeComposite}).Analyze(records)

			assert.Equal(t, StatusInsufficientData, report.Status)
			assert.Equal(t, InsufficientDataMessage, report.Message)
			assert.Nil(t, report.Aggregates)
			assert.Nil(t, report.ExerciseTier)
			assert.Nil(t, report.SleepTier)
			assert.Nil(t, report.Composite)
			assert.Empty(t, report.Suggestions)
			assert.False(t, report.HasScores())
		})
	}
}

func TestAnalyze_ExerciseTiers(t *testing.T) {
	tests := []struct {
		name    string
		minutes []float64
		want    TierLevel
	}{
		{"abundant", []float64{50, 50, 50}, TierExcellent},
		{"exactly 45 is good habit", []float64{45, 45, 45}, TierGoodHabit},
		{"good habit", []float64{30, 30, 30}, TierGoodHabit},
		{"exactly 25 needs improvement", []float64{25, 25, 25}, TierNeedsImprovement},
		{"needs improvement", []float64{20, 20, 20}, TierNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := makeRecords(tt.minutes, repeat(8, 3), repeat(4, 3))
			report := Analyze(records)

			require.Equal(t, StatusOK, report.Status)
			assert.Equal(t, tt.want, report.ExerciseTier.Level)
		})
	}
}

func TestAnalyze_SleepTiers(t *testing.T) {
	tests := []struct {
		name    string
		sleep   []float64
		quality []float64
		want    TierLevel
	}{
		{"ideal", repeat(8, 3), repeat(5, 3), TierIdeal},
		{"ideal at the boundary", repeat(7.5, 3), repeat(4, 3), TierIdeal},
		{"long sleep, poor quality is good", repeat(8, 3), repeat(2, 3), TierGood},
		{"exactly 7 is good", repeat(7, 3), repeat(3, 3), TierGood},
		{"short sleep", repeat(6, 3), repeat(3, 3), TierNeedsImprovement},
		{"short sleep, great quality", repeat(6.9, 3), repeat(5, 3), TierNeedsImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := makeRecords(repeat(30, 3), tt.sleep, tt.quality)
			report := Analyze(records)

			require.Equal(t, StatusOK, report.Status)
			assert.Equal(t, tt.want, report.SleepTier.Level)
		})
	}
}

func TestAnalyze_WeekScenario(t *testing.T) {
	minutes := []float64{30, 0, 45, 30, 0, 60, 30}
	sports := []string{"run", "", "swim", "run", "", "cycle", "run"}
	records := makeRecords(minutes, repeat(7.5, 7), repeat(4, 7), sports...)

	report := Analyze(records)

	require.Equal(t, StatusOK, report.Status)
	require.NotNil(t, report.Aggregates)
	// 195 minutes over 7 days.
	assert.InDelta(t, 27.9, report.Aggregates.AvgDuration, 0.001)
	assert.Equal(t, 5, report.Aggregates.ActiveDays)
	assert.Equal(t, 3, report.Aggregates.SportVariety)
	assert.Equal(t, 7.5, report.Aggregates.AvgSleep)
	assert.Equal(t, 4.0, report.Aggregates.AvgQuality)
	assert.Equal(t, TierGoodHabit, report.ExerciseTier.Level)
	assert.Equal(t, TierIdeal, report.SleepTier.Level)
	assert.Nil(t, report.Composite, "basic mode computes no composite")
}

func TestAnalyze_TrailingWindow(t *testing.T) {
	// Ten old sedentary days followed by seven very active ones.
	minutes := append(repeat(0, 10), repeat(60, 7)...)
	records := makeRecords(minutes, repeat(8, 17), repeat(4, 17))

	weekly := New(Options{Window: DefaultWindow}).Analyze(records)
	require.Equal(t, StatusOK, weekly.Status)
	assert.Equal(t, 7, weekly.Aggregates.WindowSize)
	assert.Equal(t, 17, weekly.Aggregates.TotalRecords)
	assert.Equal(t, 60.0, weekly.Aggregates.AvgDuration)
	assert.Equal(t, TierExcellent, weekly.ExerciseTier.Level)

	extended := New(Options{Window: ExtendedWindow}).Analyze(records)
	assert.Equal(t, 14, extended.Aggregates.WindowSize)
	assert.Equal(t, 30.0, extended.Aggregates.AvgDuration)
	assert.Equal(t, TierGoodHabit, extended.ExerciseTier.Level)
}

func TestAnalyze_ShortStoreUsesEverything(t *testing.T) {
	records := makeRecords([]float64{10, 20, 90}, repeat(8, 3), repeat(4, 3))
	report := New(Options{Window: 7}).Analyze(records)

	assert.Equal(t, 3, report.Aggregates.WindowSize)
	assert.Equal(t, 40.0, report.Aggregates.AvgDuration)
}

func TestAnalyze_DefaultsForZeroOptions(t *testing.T) {
	a := New(Options{Window: -3})
	assert.Equal(t, DefaultWindow, a.Window())
	assert.Equal(t, ModeBasic, a.Mode())
}

func TestAnalyze_Suggestions(t *testing.T) {
	t.Run("single sport and short sleep", func(t *testing.T) {
		records := makeRecords(repeat(30, 3), repeat(6, 3), repeat(4, 3))
		report := Analyze(records)

		assert.Contains(t, report.Suggestions, "Try new sports to add variety to your training.")
		assert.Contains(t, report.Suggestions, "Aim for 7+ hours of sleep.")
	})

	t.Run("varied and rested", func(t *testing.T) {
		records := makeRecords(repeat(50, 3), repeat(8, 3), repeat(5, 3), "run", "swim", "yoga")
		for _, r := range records {
			r.WithNotes("good day")
		}
		report := Analyze(records)

		assert.Empty(t, report.Suggestions)
	})

	t.Run("missing notes only adds a suggestion", func(t *testing.T) {
		records := makeRecords(repeat(50, 3), repeat(8, 3), repeat(5, 3), "run", "swim", "yoga")
		report := Analyze(records)

		require.Equal(t, StatusOK, report.Status)
		assert.Equal(t, []string{"Keep a short journal note to track how you feel."}, report.Suggestions)
	})

	t.Run("few active days", func(t *testing.T) {
		minutes := []float64{0, 0, 0, 0, 0, 60, 60}
		records := makeRecords(minutes, repeat(8, 7), repeat(4, 7))
		report := Analyze(records)

		assert.Contains(t, report.Suggestions, "Add more active days; at least 3 per week.")
	})
}

func TestAnalyze_Rounding(t *testing.T) {
	records := makeRecords([]float64{10, 10, 11}, []float64{7, 7, 7.33}, repeat(4, 3))
	report := Analyze(records)

	assert.Equal(t, 10.3, report.Aggregates.AvgDuration)
	assert.Equal(t, 7.1, report.Aggregates.AvgSleep)
}

func TestAnalyze_ConcurrentCalls(t *testing.T) {
	a := New(Options{Mode: ModeComposite})
	records := makeRecords([]float64{30, 0, 45, 30, 0, 60, 30}, repeat(7.5, 7), repeat(4, 7))
	want := a.Analyze(records)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, a.Analyze(records))
		}()
	}
	wg.Wait()
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeBasic, false},
		{"basic", ModeBasic, false},
		{"Composite", ModeComposite, false},
		{"advanced", ModeComposite, false},
		{"fancy", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
