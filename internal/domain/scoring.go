// Package domain contains the core business logic and entities.
package domain

import "time"

// ScoreConfig holds the scoring weights.
type ScoreConfig struct {
	ViewWeight     float64 // weight per view
	AgeWeight      float64 // freshness bonus at age zero
	AgeDecayPerDay float64 // bonus lost per day since publication
}

// DefaultScoreConfig returns the production weights: views dominate,
// with a freshness bonus that decays to zero over ageWeight/decay days.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		ViewWeight:     0.1,
		AgeWeight:      1000,
		AgeDecayPerDay: 1,
	}
}

// CalculateScore computes the ranking score for a video.
//
// Formula:
//
//	viewScore = viewCount * ViewWeight
//	ageScore  = max(0, AgeWeight - daysSincePublished * AgeDecayPerDay)
//	score     = viewScore + ageScore
//
// now is an explicit parameter so the function is deterministic and
// testable. The score is monotone increasing in viewCount and monotone
// non-increasing in age, floored at the viewScore contribution once the
// age bonus bottoms out.
func CalculateScore(viewCount int, publishedAt, now time.Time, cfg ScoreConfig) float64 {
	days := DaysBetween(publishedAt, now)

	viewScore := float64(viewCount) * cfg.ViewWeight
	ageScore := cfg.AgeWeight - float64(days)*cfg.AgeDecayPerDay
	if ageScore < 0 {
		ageScore = 0
	}

	return viewScore + ageScore
}

// DaysBetween returns the number of whole days from publishedAt to now,
// clamped at zero for future-dated publish times.
func DaysBetween(publishedAt, now time.Time) int {
	if !now.After(publishedAt) {
		return 0
	}

	return int(now.Sub(publishedAt).Hours() / 24)
}
