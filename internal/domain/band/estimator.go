package band

import "math"

// EstimateFromAssessment converts the average self-assessment level from
// onboarding into a starting band estimate, rounded to the nearest half
// band. The onboarding scale tops out at 8.0 rather than 9.0: without
// observed performance the estimate stays conservative. This deliberately
// uses a different curve than SkillBand, which maps measured proficiency.
func EstimateFromAssessment(avgLevel float64) float64 {
	return math.Round((avgLevel/100*4+4)*2) / 2
}
