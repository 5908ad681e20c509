package domain

// Skill identifies one of the four tested exam skills, or the mixed focus
// used for foundation and recovery sessions.
type Skill string

// Possible skill values
const (
	SkillListening Skill = "listening"
	SkillReading   Skill = "reading"
	SkillWriting   Skill = "writing"
	SkillSpeaking  Skill = "speaking"
	SkillMixed     Skill = "mixed"
)

// ScoredSkills lists the four skills that carry a proficiency level, in
// canonical order. The order is load-bearing: it is the tie-break used when
// skills have equal levels.
func ScoredSkills() []Skill {
	return []Skill{SkillListening, SkillReading, SkillWriting, SkillSpeaking}
}

// IsValid reports whether the skill is one of the known values.
func (s Skill) IsValid() bool {
	switch s {
	case SkillListening, SkillReading, SkillWriting, SkillSpeaking, SkillMixed:
		return true
	default:
		return false
	}
}

// PacingMode classifies how aggressively the plan should push the learner,
// derived from the days remaining until the exam.
type PacingMode string

// Possible pacing mode values
const (
	PacingIntensive   PacingMode = "INTENSIVE"
	PacingBalanced    PacingMode = "BALANCED"
	PacingSteadyBuild PacingMode = "STEADY_BUILD"
)

// IsValid reports whether the pacing mode is one of the known values.
func (m PacingMode) IsValid() bool {
	switch m {
	case PacingIntensive, PacingBalanced, PacingSteadyBuild:
		return true
	default:
		return false
	}
}

// GoalType is the difficulty tier of a day's assignment.
type GoalType string

// Possible goal type values
const (
	GoalTypeFoundation   GoalType = "foundation"
	GoalTypeIntermediate GoalType = "intermediate"
	GoalTypeAdvanced     GoalType = "advanced"
	GoalTypeMock         GoalType = "mock"
	GoalTypeRecovery     GoalType = "recovery"
)

// IsValid reports whether the goal type is one of the known values.
func (t GoalType) IsValid() bool {
	switch t {
	case GoalTypeFoundation, GoalTypeIntermediate, GoalTypeAdvanced,
		GoalTypeMock, GoalTypeRecovery:
		return true
	default:
		return false
	}
}
