package pacing

import (
	"math"
	"time"

	"github.com/phrazzld/pace-api/internal/domain"
)

// daysUntilExam counts the days from now until the exam date, rounding any
// partial day up so the morning of day N still counts day N. An exam in the
// past yields a non-positive count, which still classifies as intensive.
func daysUntilExam(examDate, now time.Time) int {
	return int(math.Ceil(examDate.Sub(now).Hours() / 24))
}

// classifyPacing maps days remaining until the exam onto a pacing mode.
// Both thresholds are inclusive: exactly IntensiveMaxDays days out is still
// intensive, exactly BalancedMaxDays is still balanced.
func classifyPacing(daysRemaining int, params *Params) domain.PacingMode {
	switch {
	case daysRemaining <= params.IntensiveMaxDays:
		return domain.PacingIntensive
	case daysRemaining <= params.BalancedMaxDays:
		return domain.PacingBalanced
	default:
		return domain.PacingSteadyBuild
	}
}

// sessionDuration derives the target session length from the learner's
// preferred minutes and the pacing mode. Intensive mode stretches sessions,
// steady-build trims them, balanced leaves the preference untouched.
func sessionDuration(preferredMinutes int, mode domain.PacingMode, params *Params) int {
	switch mode {
	case domain.PacingIntensive:
		if stretched := preferredMinutes + params.IntensiveDurationBump; stretched > params.IntensiveMinDuration {
			return stretched
		}
		return params.IntensiveMinDuration
	case domain.PacingSteadyBuild:
		if trimmed := preferredMinutes - params.SteadyDurationTrim; trimmed < params.SteadyMaxDuration {
			return trimmed
		}
		return params.SteadyMaxDuration
	default:
		return preferredMinutes
	}
}
