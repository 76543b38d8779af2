// ABOUTME: Composite 0-100 health index blending exercise and sleep sub-scores.
// ABOUTME: Sub-scores are clamped before weighting; bands map the final score.
package analyzer

// Weight constants for the composite score. Each group sums to 1.0.
const (
	weightDuration    = 0.5
	weightConsistency = 0.3
	weightVariety     = 0.2

	weightSleepDuration = 0.6
	weightSleepQuality  = 0.4

	weightSport = 0.6
	weightSleep = 0.4
)

// Targets the sub-scores are normalised against.
const (
	targetDurationMinutes = 45.0
	targetSleepHours      = 8.0
	maxSleepQuality       = 5.0
	varietyPointsPerSport = 25.0
)

// Thresholds that map a composite score to a band.
const (
	BandExcellentAbove = 85.0
	BandGoodFrom       = 70.0
	BandDevelopingFrom = 50.0
)

// ComputeComposite calculates the 0-100 health index from raw aggregates.
//
//	sport = duration*0.5 + consistency*0.3 + variety*0.2
//	sleep = sleep_duration*0.6 + sleep_quality*0.4
//	score = sport*0.6 + sleep*0.4
//
// Every sub-score is clamped to [0, 100] before weighting. Consistency is
// always active days per week, so a 14-record window with 7 or more active
// days scores 100.
func ComputeComposite(agg Aggregates) Composite {
	duration := clamp100(agg.AvgDuration / targetDurationMinutes * 100)
	consistency := clamp100(float64(agg.ActiveDays) / float64(DefaultWindow) * 100)
	variety := clamp100(float64(agg.SportVariety) * varietyPointsPerSport)
	sport := duration*weightDuration + consistency*weightConsistency + variety*weightVariety

	sleepDuration := clamp100(agg.AvgSleep / targetSleepHours * 100)
	sleepQuality := clamp100(agg.AvgQuality / maxSleepQuality * 100)
	sleep := sleepDuration*weightSleepDuration + sleepQuality*weightSleepQuality

	score := sport*weightSport + sleep*weightSleep

	return Composite{
		Score:              round1(score),
		Band:               bandFromScore(score),
		SportScore:         round1(sport),
		SleepScore:         round1(sleep),
		DurationScore:      round1(duration),
		ConsistencyScore:   round1(consistency),
		VarietyScore:       round1(variety),
		SleepDurationScore: round1(sleepDuration),
		SleepQualityScore:  round1(sleepQuality),
	}
}

// bandFromScore maps a numeric score to a named band.
func bandFromScore(score float64) Band {
	switch {
	case score > BandExcellentAbove:
		return BandExcellent
	case score >= BandGoodFrom:
		return BandGood
	case score >= BandDevelopingFrom:
		return BandDeveloping
	default:
		return BandStartingOut
	}
}

// clamp100 restricts v to the range [0, 100].
func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
