package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for DailyGoalRecord
var (
	ErrEmptyRecordUserID = errors.New("goal record user ID cannot be empty")
	ErrInvalidScore      = errors.New("score must be between 0 and 100")
	ErrInvalidTimeSpent  = errors.New("time spent cannot be negative")
)

// DailyGoalRecord is the persisted form of a generated goal for a specific
// calendar date, together with its completion state. GoalDate is a date at
// UTC midnight; at most one non-recovery record exists per user per date.
type DailyGoalRecord struct {
	ID               uuid.UUID    `json:"id"`
	UserID           uuid.UUID    `json:"user_id"`
	GoalDate         time.Time    `json:"goal_date"`
	Goal             AdaptiveGoal `json:"goal"`
	Completed        bool         `json:"completed"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	Score            *int         `json:"score,omitempty"`
	TimeSpentMinutes *int         `json:"time_spent_minutes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// NewDailyGoalRecord creates a pending record for the given goal on the
// given date. The date is truncated to UTC midnight so that lookups by
// calendar day are exact.
func NewDailyGoalRecord(userID uuid.UUID, goalDate time.Time, goal AdaptiveGoal) (*DailyGoalRecord, error) {
	now := time.Now().UTC()
	record := &DailyGoalRecord{
		ID:        uuid.New(),
		UserID:    userID,
		GoalDate:  DateOf(goalDate),
		Goal:      goal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// MarkCompleted records a completion outcome on the record. It does not
// guard against double completion; callers check Completed first.
func (r *DailyGoalRecord) MarkCompleted(score, timeSpentMinutes int, at time.Time) error {
	if score < 0 || score > 100 {
		return ErrInvalidScore
	}
	if timeSpentMinutes < 0 {
		return ErrInvalidTimeSpent
	}

	at = at.UTC()
	r.Completed = true
	r.CompletedAt = &at
	r.Score = &score
	r.TimeSpentMinutes = &timeSpentMinutes
	r.UpdatedAt = at

	return nil
}

// Validate checks if the DailyGoalRecord has valid data.
// Returns an error if any field fails validation.
func (r *DailyGoalRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyRecordUserID
	}

	if r.Score != nil && (*r.Score < 0 || *r.Score > 100) {
		return ErrInvalidScore
	}

	if r.TimeSpentMinutes != nil && *r.TimeSpentMinutes < 0 {
		return ErrInvalidTimeSpent
	}

	return r.Goal.Validate()
}

// DateOf truncates a timestamp to midnight UTC, the canonical form for
// goal dates and missed-day arithmetic.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
