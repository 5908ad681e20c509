package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pace-api/internal/domain"
)

func TestNewDailyGoalRecord(t *testing.T) {
	t.Parallel()

	t.Run("truncates the goal date to midnight UTC", func(t *testing.T) {
		t.Parallel()

		loc := time.FixedZone("IST", 5*3600+1800)
		goalDate := time.Date(2026, 3, 10, 23, 45, 0, 0, loc)

		record, err := domain.NewDailyGoalRecord(uuid.New(), goalDate, validGoal())
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), record.GoalDate)
		assert.False(t, record.Completed)
		assert.Nil(t, record.Score)
	})

	t.Run("rejects an empty user ID", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewDailyGoalRecord(uuid.Nil, time.Now(), validGoal())
		assert.ErrorIs(t, err, domain.ErrEmptyRecordUserID)
	})

	t.Run("rejects an invalid goal", func(t *testing.T) {
		t.Parallel()

		goal := validGoal()
		goal.Title = ""

		_, err := domain.NewDailyGoalRecord(uuid.New(), time.Now(), goal)
		assert.ErrorIs(t, err, domain.ErrEmptyGoalTitle)
	})
}

func TestMarkCompleted(t *testing.T) {
	t.Parallel()

	t.Run("records the outcome", func(t *testing.T) {
		t.Parallel()

		record, err := domain.NewDailyGoalRecord(uuid.New(), time.Now(), validGoal())
		require.NoError(t, err)

		at := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
		require.NoError(t, record.MarkCompleted(85, 25, at))

		assert.True(t, record.Completed)
		require.NotNil(t, record.CompletedAt)
		assert.True(t, record.CompletedAt.Equal(at))
		require.NotNil(t, record.Score)
		assert.Equal(t, 85, *record.Score)
		require.NotNil(t, record.TimeSpentMinutes)
		assert.Equal(t, 25, *record.TimeSpentMinutes)
	})

	t.Run("rejects out of range scores", func(t *testing.T) {
		t.Parallel()

		record, err := domain.NewDailyGoalRecord(uuid.New(), time.Now(), validGoal())
		require.NoError(t, err)

		assert.ErrorIs(t, record.MarkCompleted(-1, 10, time.Now()), domain.ErrInvalidScore)
		assert.ErrorIs(t, record.MarkCompleted(101, 10, time.Now()), domain.ErrInvalidScore)
		assert.False(t, record.Completed)
	})

	t.Run("rejects negative time spent", func(t *testing.T) {
		t.Parallel()

		record, err := domain.NewDailyGoalRecord(uuid.New(), time.Now(), validGoal())
		require.NoError(t, err)

		assert.ErrorIs(t, record.MarkCompleted(50, -5, time.Now()), domain.ErrInvalidTimeSpent)
	})
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "strips time components",
			input:    time.Date(2026, 3, 10, 18, 45, 12, 999, time.UTC),
			expected: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "converts zone before truncating",
			input:    time.Date(2026, 3, 10, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
			expected: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "midnight is unchanged",
			input:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, domain.DateOf(tc.input))
		})
	}
}
