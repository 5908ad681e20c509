package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/pace-api/internal/domain"
)

func validGoal() domain.AdaptiveGoal {
	return domain.AdaptiveGoal{
		DayNumber:       3,
		WeekNumber:      1,
		Title:           "Reading Practice",
		Description:     "Skimming and scanning drills.",
		SkillFocus:      domain.SkillReading,
		GoalType:        domain.GoalTypeIntermediate,
		DifficultyLevel: 2,
		DurationMinutes: 30,
		PacingMode:      domain.PacingBalanced,
	}
}

func TestAdaptiveGoalValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.AdaptiveGoal)
		wantErr error
	}{
		{
			name:    "valid goal passes",
			mutate:  func(g *domain.AdaptiveGoal) {},
			wantErr: nil,
		},
		{
			name:    "empty title",
			mutate:  func(g *domain.AdaptiveGoal) { g.Title = "" },
			wantErr: domain.ErrEmptyGoalTitle,
		},
		{
			name:    "negative day number",
			mutate:  func(g *domain.AdaptiveGoal) { g.DayNumber = -1 },
			wantErr: domain.ErrInvalidGoalDay,
		},
		{
			name:    "negative week number",
			mutate:  func(g *domain.AdaptiveGoal) { g.WeekNumber = -1 },
			wantErr: domain.ErrInvalidGoalWeek,
		},
		{
			name:    "zero duration",
			mutate:  func(g *domain.AdaptiveGoal) { g.DurationMinutes = 0 },
			wantErr: domain.ErrInvalidGoalDuration,
		},
		{
			name:    "difficulty below range",
			mutate:  func(g *domain.AdaptiveGoal) { g.DifficultyLevel = 0 },
			wantErr: domain.ErrInvalidGoalLevel,
		},
		{
			name:    "difficulty above range",
			mutate:  func(g *domain.AdaptiveGoal) { g.DifficultyLevel = 6 },
			wantErr: domain.ErrInvalidGoalLevel,
		},
		{
			name:    "unknown skill focus",
			mutate:  func(g *domain.AdaptiveGoal) { g.SkillFocus = domain.Skill("grammar") },
			wantErr: domain.ErrInvalidSkill,
		},
		{
			name:    "unknown goal type",
			mutate:  func(g *domain.AdaptiveGoal) { g.GoalType = domain.GoalType("cram") },
			wantErr: domain.ErrInvalidGoalType,
		},
		{
			name:    "unknown pacing mode",
			mutate:  func(g *domain.AdaptiveGoal) { g.PacingMode = domain.PacingMode("sprint") },
			wantErr: domain.ErrInvalidPacingMode,
		},
		{
			name: "assessment answer out of range",
			mutate: func(g *domain.AdaptiveGoal) {
				g.Content.Assessment.Questions = []domain.AssessmentQuestion{
					{Prompt: "Pick one", Options: []string{"a", "b"}, Answer: 2},
				}
			},
			wantErr: domain.ErrInvalidAssessmentKey,
		},
		{
			name: "open ended question allows negative answer",
			mutate: func(g *domain.AdaptiveGoal) {
				g.Content.Assessment.Questions = []domain.AssessmentQuestion{
					{Prompt: "Describe a journey", Type: "part2", Answer: -1},
				}
			},
			wantErr: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			goal := validGoal()
			tc.mutate(&goal)

			err := goal.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdaptiveGoalIsRecovery(t *testing.T) {
	t.Parallel()

	goal := validGoal()
	assert.False(t, goal.IsRecovery())

	goal.GoalType = domain.GoalTypeRecovery
	assert.True(t, goal.IsRecovery())
}
