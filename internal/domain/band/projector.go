// Package band converts 0-100 proficiency levels into IELTS band scores
// and projects where the learner's observed improvement rate puts them by
// roughly a month out.
package band

import (
	"math"

	"github.com/phrazzld/pace-api/internal/domain"
)

const (
	minBand = 4.0
	maxBand = 9.0

	// projectionWeeks is the horizon the improvement rate is extrapolated
	// over.
	projectionWeeks = 4

	// defaultImprovementRate stands in until enough scores exist to
	// measure a real rate.
	defaultImprovementRate = 0.1

	// rateSampleSize is how many scores each side of the improvement-rate
	// comparison uses.
	rateSampleSize = 5

	// confidencePerCompletion and confidenceCap shape how completion
	// volume translates into projection confidence.
	confidencePerCompletion = 5
	confidenceCap           = 95
)

// SkillBand maps a 0-100 proficiency level onto the band scale, clamped to
// the supported range.
func SkillBand(level int) float64 {
	band := float64(level)/10 + 4.5
	return math.Min(maxBand, math.Max(minBand, band))
}

// Overall averages the four scored skills into a single band estimate.
func Overall(levels map[domain.Skill]int) float64 {
	var sum float64
	for _, skill := range domain.ScoredSkills() {
		level := domain.DefaultSkillLevel
		if l, ok := levels[skill]; ok {
			level = l
		}
		sum += SkillBand(level)
	}
	return sum / 4
}

// ImprovementRate measures band-score improvement per week from recent
// completion scores, ordered most recent first. With fewer than two full
// sample windows the default rate applies.
func ImprovementRate(scores []int) float64 {
	if len(scores) < 2 {
		return defaultImprovementRate
	}

	recent := scores
	if len(recent) > rateSampleSize {
		recent = recent[:rateSampleSize]
	}

	var earlier []int
	if len(scores) > rateSampleSize {
		earlier = scores[rateSampleSize:]
		if len(earlier) > rateSampleSize {
			earlier = earlier[:rateSampleSize]
		}
	}
	if len(earlier) == 0 {
		return defaultImprovementRate
	}

	return (mean(recent) - mean(earlier)) / 100
}

// Project builds the full band projection for a learner.
func Project(levels map[domain.Skill]int, targetBand float64, recentScores []int, completions int) domain.BandProjection {
	skillBands := make(domain.SkillBands, 4)
	for _, skill := range domain.ScoredSkills() {
		level := domain.DefaultSkillLevel
		if l, ok := levels[skill]; ok {
			level = l
		}
		skillBands[skill] = SkillBand(level)
	}

	current := Overall(levels)
	rate := ImprovementRate(recentScores)
	projected := math.Min(maxBand, current+rate*projectionWeeks)

	confidence := completions * confidencePerCompletion
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return domain.BandProjection{
		CurrentBand:   current,
		SkillBands:    skillBands,
		TargetBand:    targetBand,
		ProjectedBand: projected,
		Confidence:    confidence,
		Gap:           targetBand - current,
	}
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
