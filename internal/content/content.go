// Package content defines the question sourcing contract used by goal
// generation. Implementations supply exam-style practice questions; the
// pacing engine composes them into daily goals without caring where they
// came from.
package content

import (
	"context"
	"errors"

	"github.com/phrazzld/pace-api/internal/domain"
)

// Difficulty buckets questions within a skill.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question types
const (
	TypeMultipleChoice = "multiple_choice"
	TypeEssay          = "essay_task2"
	TypeChartTask      = "task1_academic"
	TypeSpeakingPart1  = "part1"
	TypeSpeakingPart2  = "part2"
	TypeSpeakingPart3  = "part3"
)

// Common errors
var (
	// ErrNoQuestions indicates the source has no questions matching the
	// request. Callers degrade gracefully rather than failing the goal.
	ErrNoQuestions = errors.New("no questions available")
)

// Question is a single exam-style practice question. Answer indexes into
// Options for multiple-choice questions and is -1 for open-ended prompts.
type Question struct {
	ID          string       `json:"id"`
	Skill       domain.Skill `json:"skill"`
	Type        string       `json:"type"`
	Prompt      string       `json:"prompt"`
	Options     []string     `json:"options,omitempty"`
	Answer      int          `json:"answer"`
	Difficulty  Difficulty   `json:"difficulty"`
	Explanation string       `json:"explanation,omitempty"`
}

// Request describes the questions a goal needs. Seed makes selection
// deterministic for a given request; the same seed always yields the same
// questions.
type Request struct {
	Skill      domain.Skill
	Difficulty Difficulty
	Count      int
	Seed       int64
}

// Bank supplies practice questions for goal composition.
//
// Implementations must return ErrNoQuestions (possibly wrapped) when
// nothing matches, and must be safe for concurrent use.
type Bank interface {
	// Questions returns up to req.Count questions for the requested skill
	// and difficulty. A mixed skill request draws from all four skills.
	Questions(ctx context.Context, req Request) ([]Question, error)
}

// DifficultyForGoalType maps a goal's difficulty tier onto the question
// bucket used to source its material.
func DifficultyForGoalType(goalType domain.GoalType) Difficulty {
	switch goalType {
	case domain.GoalTypeFoundation:
		return DifficultyEasy
	case domain.GoalTypeAdvanced:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
