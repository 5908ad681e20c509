package pacing

import (
	"github.com/phrazzld/pace-api/internal/domain"
)

// adviseGoalType picks the difficulty tier for a given study week under a
// given pacing mode. Week one is foundation work regardless of mode; after
// that, intensive schedules escalate fastest and reach mock exams, while
// steady-build schedules never go past advanced.
func adviseGoalType(weekNumber int, mode domain.PacingMode) domain.GoalType {
	if weekNumber <= 1 {
		return domain.GoalTypeFoundation
	}

	switch mode {
	case domain.PacingIntensive:
		switch {
		case weekNumber <= 2:
			return domain.GoalTypeIntermediate
		case weekNumber <= 3:
			return domain.GoalTypeAdvanced
		default:
			return domain.GoalTypeMock
		}
	case domain.PacingSteadyBuild:
		switch {
		case weekNumber <= 3:
			return domain.GoalTypeFoundation
		case weekNumber <= 5:
			return domain.GoalTypeIntermediate
		default:
			return domain.GoalTypeAdvanced
		}
	default:
		switch {
		case weekNumber <= 2:
			return domain.GoalTypeFoundation
		case weekNumber <= 3:
			return domain.GoalTypeIntermediate
		default:
			return domain.GoalTypeAdvanced
		}
	}
}

// baseDifficulty maps a goal type onto its starting difficulty level.
func baseDifficulty(goalType domain.GoalType) int {
	switch goalType {
	case domain.GoalTypeIntermediate:
		return 2
	case domain.GoalTypeAdvanced:
		return 3
	case domain.GoalTypeMock:
		return 4
	default:
		// Foundation and recovery both start at the floor.
		return 1
	}
}

// difficultyLevel computes the 1-5 difficulty of a goal from its tier, the
// pacing mode, and how deep into the program the learner is. Intensive mode
// shifts everything up a level, steady-build shifts down but never below
// the floor, and every two completed weeks add another level before the
// final clamp.
func difficultyLevel(goalType domain.GoalType, mode domain.PacingMode, weekNumber int, params *Params) int {
	level := baseDifficulty(goalType)

	switch mode {
	case domain.PacingIntensive:
		level++
	case domain.PacingSteadyBuild:
		if level > params.MinDifficultyLevel {
			level--
		}
	}

	if weekNumber >= 1 {
		level += (weekNumber - 1) / 2
	}

	if level < params.MinDifficultyLevel {
		level = params.MinDifficultyLevel
	}
	if level > params.MaxDifficultyLevel {
		level = params.MaxDifficultyLevel
	}
	return level
}
