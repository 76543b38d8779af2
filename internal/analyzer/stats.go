// ABOUTME: Whole-journal statistics: totals, averages, per-sport and weekday counts.
// ABOUTME: Unlike Analyze, these cover every record rather than a window.
package analyzer

import (
	"sort"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
)

// Stats are whole-journal totals, independent of the analysis window.
type Stats struct {
	TotalRecords int            `json:"total_records"`
	FirstDate    string         `json:"first_date,omitempty"`
	LastDate     string         `json:"last_date,omitempty"`
	TotalMinutes float64        `json:"total_minutes"`
	ActiveDays   int            `json:"active_days"`
	RestDays     int            `json:"rest_days"`
	AvgDuration  float64        `json:"avg_duration"`
	AvgSleep     float64        `json:"avg_sleep"`
	AvgQuality   float64        `json:"avg_quality"`
	Sports       []SportCount   `json:"sports,omitempty"`
	ByWeekday    map[string]int `json:"active_by_weekday,omitempty"`
}

// SportCount is the number of days a sport was logged.
type SportCount struct {
	Sport   string  `json:"sport"`
	Days    int     `json:"days"`
	Minutes float64 `json:"minutes"`
}

// ComputeStats summarizes all records.
func ComputeStats(records []*models.DailyRecord) Stats {
	st := Stats{TotalRecords: len(records)}
	if len(records) == 0 {
		return st
	}

	agg := aggregate(records)
	st.ActiveDays = agg.ActiveDays
	st.RestDays = len(records) - agg.ActiveDays
	st.AvgDuration = round1(agg.AvgDuration)
	st.AvgSleep = round1(agg.AvgSleep)
	st.AvgQuality = round1(agg.AvgQuality)
	st.ByWeekday = make(map[string]int)

	sports := make(map[string]*SportCount)
	for _, r := range records {
		st.TotalMinutes += r.ExerciseMinutes

		if st.FirstDate == "" || r.Date < st.FirstDate {
			st.FirstDate = r.Date
		}
		if r.Date > st.LastDate {
			st.LastDate = r.Date
		}

		if r.ExerciseMinutes > 0 {
			if t := r.Time(); !t.IsZero() {
				st.ByWeekday[t.Weekday().String()]++
			}
		}

		name := strings.ToLower(strings.TrimSpace(r.Sport))
		if name == "" {
			continue
		}
		sc, ok := sports[name]
		if !ok {
			sc = &SportCount{Sport: name}
			sports[name] = sc
		}
		sc.Days++
		sc.Minutes += r.ExerciseMinutes
	}

	for _, sc := range sports {
		st.Sports = append(st.Sports, *sc)
	}
	sort.Slice(st.Sports, func(i, j int) bool {
		if st.Sports[i].Days != st.Sports[j].Days {
			return st.Sports[i].Days > st.Sports[j].Days
		}
		return st.Sports[i].Sport < st.Sports[j].Sport
	})

	return st
}
