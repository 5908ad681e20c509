package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StreakState
var (
	ErrEmptyStreakUserID = errors.New("streak user ID cannot be empty")
	ErrNegativeStreak    = errors.New("streak counts cannot be negative")
)

// StreakState tracks consecutive-day study activity for a user.
// LastActivityDate is a date at UTC midnight, nil until the first
// completion.
type StreakState struct {
	UserID           uuid.UUID  `json:"user_id"`
	Current          int        `json:"current"`
	Longest          int        `json:"longest"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewStreakState creates an empty streak for a new user.
func NewStreakState(userID uuid.UUID) (*StreakState, error) {
	streak := &StreakState{
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}

	if err := streak.Validate(); err != nil {
		return nil, err
	}

	return streak, nil
}

// RecordActivity advances the streak for a completion on the given day.
// Consecutive-day activity extends the streak, a repeat on the same day
// leaves it unchanged, and any gap resets it to one. Longest only grows.
func (s *StreakState) RecordActivity(day time.Time) {
	day = DateOf(day)

	switch {
	case s.LastActivityDate == nil:
		s.Current = 1
	case s.LastActivityDate.Equal(day):
		// Second completion on the same day, nothing to advance.
	case s.LastActivityDate.Equal(day.AddDate(0, 0, -1)):
		s.Current++
	default:
		s.Current = 1
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastActivityDate = &day
	s.UpdatedAt = time.Now().UTC()
}

// Validate checks if the StreakState has valid data.
// Returns an error if any field fails validation.
func (s *StreakState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStreakUserID
	}

	if s.Current < 0 || s.Longest < 0 {
		return ErrNegativeStreak
	}

	return nil
}
