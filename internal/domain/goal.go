package domain

import (
	"errors"
	"fmt"
)

// Common validation errors for AdaptiveGoal
var (
	ErrEmptyGoalTitle       = errors.New("goal title cannot be empty")
	ErrInvalidGoalDay       = errors.New("goal day number cannot be negative")
	ErrInvalidGoalWeek      = errors.New("goal week number cannot be negative")
	ErrInvalidGoalDuration  = errors.New("goal duration must be positive")
	ErrInvalidGoalLevel     = errors.New("goal difficulty level must be between 1 and 5")
	ErrInvalidAssessmentKey = errors.New("assessment answer index out of range")
)

// Lesson is the instructional part of a daily goal.
type Lesson struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoURL    string   `json:"video_url,omitempty"`
	KeyPoints   []string `json:"key_points"`
}

// Exercise is a single practice activity attached to a goal.
type Exercise struct {
	Kind             string `json:"kind"`
	Instructions     string `json:"instructions"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
}

// AssessmentQuestion is one question in a goal's micro-assessment. Answer
// indexes into Options for multiple-choice questions and is -1 for free-form
// and speaking prompts.
type AssessmentQuestion struct {
	Prompt  string   `json:"prompt"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Answer  int      `json:"answer"`
}

// MicroAssessment is the short self-check closing a daily goal.
type MicroAssessment struct {
	Questions        []AssessmentQuestion `json:"questions"`
	TimeLimitMinutes int                  `json:"time_limit_minutes"`
}

// GoalContent is the renderable payload of a daily goal. A degraded goal
// carries empty-but-valid content rather than failing generation.
type GoalContent struct {
	Lesson     Lesson          `json:"lesson"`
	Exercises  []Exercise      `json:"exercises"`
	Assessment MicroAssessment `json:"assessment"`
}

// AdaptiveGoal is one day's study assignment, produced by the pacing
// engine from the learner's profile and performance. Recovery sessions use
// DayNumber and WeekNumber zero to mark that they sit outside the normal
// day sequence.
type AdaptiveGoal struct {
	DayNumber       int         `json:"day_number"`
	WeekNumber      int         `json:"week_number"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	SkillFocus      Skill       `json:"skill_focus"`
	GoalType        GoalType    `json:"goal_type"`
	DifficultyLevel int         `json:"difficulty_level"`
	DurationMinutes int         `json:"duration_minutes"`
	PacingMode      PacingMode  `json:"pacing_mode"`
	Content         GoalContent `json:"content"`
}

// IsRecovery reports whether the goal is a recovery session rather than a
// regular numbered study day.
func (g *AdaptiveGoal) IsRecovery() bool {
	return g.GoalType == GoalTypeRecovery
}

// Validate checks if the AdaptiveGoal has valid data.
// Returns an error if any field fails validation.
func (g *AdaptiveGoal) Validate() error {
	if g.Title == "" {
		return ErrEmptyGoalTitle
	}

	if g.DayNumber < 0 {
		return ErrInvalidGoalDay
	}

	if g.WeekNumber < 0 {
		return ErrInvalidGoalWeek
	}

	if g.DurationMinutes <= 0 {
		return ErrInvalidGoalDuration
	}

	if g.DifficultyLevel < 1 || g.DifficultyLevel > 5 {
		return ErrInvalidGoalLevel
	}

	if !g.SkillFocus.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSkill, g.SkillFocus)
	}

	if !g.GoalType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidGoalType, g.GoalType)
	}

	if !g.PacingMode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPacingMode, g.PacingMode)
	}

	for _, q := range g.Content.Assessment.Questions {
		if len(q.Options) > 0 && (q.Answer < 0 || q.Answer >= len(q.Options)) {
			return ErrInvalidAssessmentKey
		}
	}

	return nil
}
