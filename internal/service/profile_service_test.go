package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/mocks"
	"github.com/phrazzld/pace-api/internal/store"
)

func newTestProfileService(
	profiles *mocks.MockProfileStore,
	progresses *mocks.MockProgressStore,
) *ProfileServiceImpl {
	return NewProfileService(profiles, progresses, testLogger())
}

func TestProfileServiceGetProfile(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored profile", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		examDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		profiles := mocks.NewMockProfileStore()
		profiles.Profiles[userID] = completedProfile(userID, examDate)

		svc := newTestProfileService(profiles, mocks.NewMockProgressStore())

		profile, err := svc.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, 7.0, profile.TargetBand)
		require.NotNil(t, profile.ExamDate)
		assert.True(t, profile.ExamDate.Equal(examDate))
	})

	t.Run("missing profile maps to incomplete onboarding", func(t *testing.T) {
		t.Parallel()

		svc := newTestProfileService(mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.GetProfile(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrProfileIncomplete)
	})

	t.Run("store failures are wrapped", func(t *testing.T) {
		t.Parallel()

		profiles := mocks.NewMockProfileStore()
		profiles.GetFn = func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
			return nil, errors.New("connection reset")
		}

		svc := newTestProfileService(profiles, mocks.NewMockProgressStore())

		_, err := svc.GetProfile(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to retrieve profile")
	})
}

func TestProfileServiceUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("applies only the provided fields", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		examDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		profiles := mocks.NewMockProfileStore()
		profiles.Profiles[userID] = completedProfile(userID, examDate)

		svc := newTestProfileService(profiles, mocks.NewMockProgressStore())

		name := "Priya"
		minutes := 45
		updated, err := svc.UpdateProfile(context.Background(), userID, store.ProfileUpdate{
			DisplayName:       &name,
			DailyStudyMinutes: &minutes,
		})
		require.NoError(t, err)

		assert.Equal(t, "Priya", updated.DisplayName)
		assert.Equal(t, 45, updated.DailyStudyMinutes)
		// Untouched fields keep their values.
		assert.Equal(t, 7.0, updated.TargetBand)
		require.NotNil(t, updated.ExamDate)
		assert.True(t, updated.ExamDate.Equal(examDate))
	})

	t.Run("clears the exam date with an invalid null time", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		profiles := mocks.NewMockProfileStore()
		profiles.Profiles[userID] = completedProfile(userID, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

		svc := newTestProfileService(profiles, mocks.NewMockProgressStore())

		updated, err := svc.UpdateProfile(context.Background(), userID, store.ProfileUpdate{
			ExamDate: &sql.NullTime{},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ExamDate)
	})

	t.Run("missing profile maps to incomplete onboarding", func(t *testing.T) {
		t.Parallel()

		svc := newTestProfileService(mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		band := 8.0
		_, err := svc.UpdateProfile(context.Background(), uuid.New(), store.ProfileUpdate{TargetBand: &band})
		assert.ErrorIs(t, err, ErrProfileIncomplete)
	})
}

func TestProfileServiceSubmitAssessment(t *testing.T) {
	t.Parallel()

	fullAssessment := map[domain.Skill]int{
		domain.SkillListening: 60,
		domain.SkillReading:   50,
		domain.SkillWriting:   40,
		domain.SkillSpeaking:  50,
	}

	t.Run("records levels and derives the band estimate", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		progresses := mocks.NewMockProgressStore()
		baseline, err := domain.NewProgress(userID)
		require.NoError(t, err)
		progresses.Progresses[userID] = baseline

		svc := newTestProfileService(mocks.NewMockProfileStore(), progresses)

		progress, err := svc.SubmitAssessment(context.Background(), userID, fullAssessment)
		require.NoError(t, err)

		assert.Equal(t, 60, progress.Levels[domain.SkillListening])
		assert.Equal(t, 40, progress.Levels[domain.SkillWriting])
		// Average 50 maps to a 6.0 band estimate.
		assert.Equal(t, 6.0, progress.EstimatedBand)
	})

	t.Run("partial assessments leave unassessed skills at the default", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		progresses := mocks.NewMockProgressStore()
		baseline, err := domain.NewProgress(userID)
		require.NoError(t, err)
		progresses.Progresses[userID] = baseline

		svc := newTestProfileService(mocks.NewMockProfileStore(), progresses)

		progress, err := svc.SubmitAssessment(context.Background(), userID, map[domain.Skill]int{
			domain.SkillListening: 80,
		})
		require.NoError(t, err)

		assert.Equal(t, 80, progress.Levels[domain.SkillListening])
		assert.Equal(t, domain.DefaultSkillLevel, progress.Levels[domain.SkillReading])
	})

	t.Run("creates the progress row when the baseline is missing", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		progresses := mocks.NewMockProgressStore()

		svc := newTestProfileService(mocks.NewMockProfileStore(), progresses)

		progress, err := svc.SubmitAssessment(context.Background(), userID, fullAssessment)
		require.NoError(t, err)

		assert.Equal(t, userID, progress.UserID)
		assert.Equal(t, 60, progress.Levels[domain.SkillListening])
	})

	t.Run("empty assessment is rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestProfileService(mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.SubmitAssessment(context.Background(), uuid.New(), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("mixed is not an assessable skill", func(t *testing.T) {
		t.Parallel()

		svc := newTestProfileService(mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.SubmitAssessment(context.Background(), uuid.New(), map[domain.Skill]int{
			domain.SkillMixed: 50,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSkill)
	})

	t.Run("unknown skill is rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestProfileService(mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.SubmitAssessment(context.Background(), uuid.New(), map[domain.Skill]int{
			domain.Skill("grammar"): 50,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSkill)
	})

	t.Run("out of range level is rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestProfileService(mocks.NewMockProfileStore(), mocks.NewMockProgressStore())

		_, err := svc.SubmitAssessment(context.Background(), uuid.New(), map[domain.Skill]int{
			domain.SkillListening: 120,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSkillLevel)
	})

	t.Run("store failure surfaces as a wrapped error", func(t *testing.T) {
		t.Parallel()

		progresses := mocks.NewMockProgressStore()
		progresses.SetLevelsFn = func(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int, estimatedBand float64) error {
			return errors.New("deadlock detected")
		}

		svc := newTestProfileService(mocks.NewMockProfileStore(), progresses)

		_, err := svc.SubmitAssessment(context.Background(), uuid.New(), fullAssessment)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record assessment")
	})
}
