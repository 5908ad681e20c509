package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/pace-api/internal/domain"
)

func TestDifficultyForGoalType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		goalType domain.GoalType
		expected Difficulty
	}{
		{
			name:     "foundation goals use easy questions",
			goalType: domain.GoalTypeFoundation,
			expected: DifficultyEasy,
		},
		{
			name:     "advanced goals use hard questions",
			goalType: domain.GoalTypeAdvanced,
			expected: DifficultyHard,
		},
		{
			name:     "intermediate goals use medium questions",
			goalType: domain.GoalTypeIntermediate,
			expected: DifficultyMedium,
		},
		{
			name:     "mock exams use medium questions",
			goalType: domain.GoalTypeMock,
			expected: DifficultyMedium,
		},
		{
			name:     "recovery sessions use medium questions",
			goalType: domain.GoalTypeRecovery,
			expected: DifficultyMedium,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, DifficultyForGoalType(tc.goalType))
		})
	}
}
