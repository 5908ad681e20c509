package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Profile
var (
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrInvalidTargetBand  = errors.New("target band must be between 4.0 and 9.0")
	ErrInvalidStudyTime   = errors.New("daily study time must be between 10 and 240 minutes")
)

// Profile holds a learner's study preferences and exam details. The exam
// date is a pointer because a freshly registered user has not configured one
// yet; goal generation treats a nil exam date as a configuration error.
type Profile struct {
	UserID              uuid.UUID  `json:"user_id"`
	DisplayName         string     `json:"display_name"`
	TargetBand          float64    `json:"target_band"`
	ExamDate            *time.Time `json:"exam_date,omitempty"`
	DailyStudyMinutes   int        `json:"daily_study_minutes"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// DefaultDailyStudyMinutes is the study-time preference applied when the
// learner has not chosen one during onboarding.
const DefaultDailyStudyMinutes = 30

// NewProfile creates a Profile with default preferences for a new user.
// The exam date starts unset; onboarding fills it in.
func NewProfile(userID uuid.UUID) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		UserID:            userID,
		TargetBand:        7.0,
		DailyStudyMinutes: DefaultDailyStudyMinutes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}

	if p.TargetBand < 4.0 || p.TargetBand > 9.0 {
		return ErrInvalidTargetBand
	}

	if p.DailyStudyMinutes < 10 || p.DailyStudyMinutes > 240 {
		return ErrInvalidStudyTime
	}

	return nil
}
