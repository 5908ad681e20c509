package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/domain/band"
	"github.com/phrazzld/pace-api/internal/mocks"
)

func newTestInsight(
	goals *mocks.MockGoalStore,
	profiles *mocks.MockProfileStore,
	progresses *mocks.MockProgressStore,
	streaks *mocks.MockStreakStore,
	now time.Time,
) *InsightServiceImpl {
	s := NewInsightService(goals, profiles, progresses, streaks, testLogger())
	s.timeFunc = func() time.Time { return now }
	return s
}

func completeOn(t *testing.T, goals *mocks.MockGoalStore, userID uuid.UUID, day time.Time, skill domain.Skill, score, minutes int) {
	t.Helper()
	record, err := domain.NewDailyGoalRecord(userID, day, testGoal(skill, domain.GoalTypeIntermediate))
	require.NoError(t, err)
	require.NoError(t, record.MarkCompleted(score, minutes, day))
	goals.Records[record.ID] = record
}

func TestInsightGetDashboard(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("missing profile reports incomplete onboarding", func(t *testing.T) {
		t.Parallel()

		insight := newTestInsight(mocks.NewMockGoalStore(), mocks.NewMockProfileStore(), mocks.NewMockProgressStore(), mocks.NewMockStreakStore(), now)

		_, err := insight.GetDashboard(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrProfileIncomplete)
	})

	t.Run("new account gets a baseline dashboard", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		profiles := mocks.NewMockProfileStore()
		profiles.Profiles[userID] = completedProfile(userID, now.AddDate(0, 0, 20))

		insight := newTestInsight(mocks.NewMockGoalStore(), profiles, mocks.NewMockProgressStore(), mocks.NewMockStreakStore(), now)

		dashboard, err := insight.GetDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Len(t, dashboard.Skills, 4)
		for _, skill := range dashboard.Skills {
			assert.Equal(t, domain.DefaultSkillLevel, skill.Level)
			assert.Equal(t, band.TrendStable, skill.Trend)
			assert.True(t, skill.FocusArea)
			assert.Empty(t, skill.RecentScores)
		}
		assert.Equal(t, 0, dashboard.Engagement.GoalsCompleted)
		assert.Zero(t, dashboard.Engagement.TotalStudyHours)
		assert.Equal(t, "20 days (INTENSIVE)", dashboard.Timeline)
	})

	t.Run("aggregates completions into engagement metrics", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		profiles := mocks.NewMockProfileStore()
		profiles.Profiles[userID] = completedProfile(userID, now.AddDate(0, 0, 60))

		goals := mocks.NewMockGoalStore()
		for i := 0; i < 3; i++ {
			completeOn(t, goals, userID, now.AddDate(0, 0, -i), domain.SkillListening, 80, 40)
		}

		streaks := mocks.NewMockStreakStore()
		today := domain.DateOf(now)
		streaks.Streaks[userID] = &domain.StreakState{UserID: userID, Current: 3, Longest: 3, LastActivityDate: &today}

		insight := newTestInsight(goals, profiles, mocks.NewMockProgressStore(), streaks, now)

		dashboard, err := insight.GetDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, 3, dashboard.Engagement.GoalsCompleted)
		assert.Equal(t, 3, dashboard.Engagement.StreakDays)
		assert.InDelta(t, 40.0, dashboard.Engagement.AverageSessionMinutes, 0.001)
		assert.InDelta(t, 2.0, dashboard.Engagement.TotalStudyHours, 0.001)
		// Three of the last seven days had a completion.
		assert.InDelta(t, 3.0/7.0*100.0, dashboard.Engagement.WeeklyConsistency, 0.001)

		assert.Equal(t, 0, dashboard.Momentum.MissedDays)
		assert.Nil(t, dashboard.Message)
		assert.Equal(t, "9 weeks (BALANCED)", dashboard.Timeline)
	})

	t.Run("missed days surface a recovery message", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		profiles := mocks.NewMockProfileStore()
		profiles.Profiles[userID] = completedProfile(userID, now.AddDate(0, 0, 60))

		goals := mocks.NewMockGoalStore()
		completeOn(t, goals, userID, now.AddDate(0, 0, -4), domain.SkillReading, 70, 30)

		insight := newTestInsight(goals, profiles, mocks.NewMockProgressStore(), mocks.NewMockStreakStore(), now)

		dashboard, err := insight.GetDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, 4, dashboard.Momentum.MissedDays)
		assert.True(t, dashboard.Momentum.NeedsRecovery())
		require.NotNil(t, dashboard.Message)
		assert.NotEmpty(t, dashboard.Message.Title)
	})

	t.Run("projection reflects levels and target", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		profiles := mocks.NewMockProfileStore()
		profile := completedProfile(userID, now.AddDate(0, 0, 120))
		profile.TargetBand = 7.5
		profiles.Profiles[userID] = profile

		progresses := mocks.NewMockProgressStore()
		progress, err := domain.NewProgress(userID)
		require.NoError(t, err)
		for _, skill := range domain.ScoredSkills() {
			progress.Levels[skill] = 20
		}
		progresses.Progresses[userID] = progress

		insight := newTestInsight(mocks.NewMockGoalStore(), profiles, progresses, mocks.NewMockStreakStore(), now)

		dashboard, err := insight.GetDashboard(context.Background(), userID)
		require.NoError(t, err)

		assert.InDelta(t, 6.5, dashboard.Projection.CurrentBand, 0.001)
		assert.InDelta(t, 7.5, dashboard.Projection.TargetBand, 0.001)
		assert.InDelta(t, 1.0, dashboard.Projection.Gap, 0.001)
		assert.Equal(t, "4 months (STEADY BUILD)", dashboard.Timeline)
	})
}
