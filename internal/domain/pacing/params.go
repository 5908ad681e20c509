package pacing

// Params defines all configurable parameters for the adaptive pacing
// algorithm. The defaults encode a 28-day program shape; tests and
// experiments may override individual knobs.
type Params struct {
	// Days-remaining thresholds for pacing mode classification.
	IntensiveMaxDays int
	BalancedMaxDays  int

	// Session duration shaping per pacing mode, in minutes.
	IntensiveMinDuration  int
	IntensiveDurationBump int
	SteadyMaxDuration     int
	SteadyDurationTrim    int

	// A recent score below this marks the skill as struggling.
	WeakScoreThreshold int

	// Micro-assessment sizing.
	MaxAssessmentQuestions    int
	AssessmentMinutes         int
	RecoveryAssessmentMinutes int

	// Recovery session shaping. Sessions at or below the missed-day
	// threshold get the short catch-up, longer gaps the condensed review.
	RecoveryShortMaxMissed int
	RecoveryShortMinutes   int
	RecoveryLongMinutes    int

	// Difficulty level bounds after all adjustments.
	MinDifficultyLevel int
	MaxDifficultyLevel int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		IntensiveMaxDays: 45,
		BalancedMaxDays:  90,

		IntensiveMinDuration:  45,
		IntensiveDurationBump: 15,
		SteadyMaxDuration:     25,
		SteadyDurationTrim:    5,

		WeakScoreThreshold: 70,

		MaxAssessmentQuestions:    3,
		AssessmentMinutes:         5,
		RecoveryAssessmentMinutes: 2,

		RecoveryShortMaxMissed: 2,
		RecoveryShortMinutes:   20,
		RecoveryLongMinutes:    30,

		MinDifficultyLevel: 1,
		MaxDifficultyLevel: 5,
	}
}
