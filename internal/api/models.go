package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	// Field renamed from Token for clarity but JSON field name kept for backward compatibility
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// CompleteGoalRequest defines the payload for recording a goal completion.
// Score is a pointer so that an explicit zero survives JSON decoding.
type CompleteGoalRequest struct {
	Score            *int `json:"score"              validate:"required"`
	TimeSpentMinutes int  `json:"time_spent_minutes" validate:"gte=0"`
}

// RecoverySessionRequest defines the payload for starting a catch-up session.
type RecoverySessionRequest struct {
	MissedDays int `json:"missed_days" validate:"required,gte=1"`
}

// UpdateProfileRequest defines the payload for partial profile updates.
// All fields are optional; only the ones present are applied. ExamDate
// accepts a YYYY-MM-DD date, or an empty string to clear it.
type UpdateProfileRequest struct {
	DisplayName         *string  `json:"display_name,omitempty"`
	TargetBand          *float64 `json:"target_band,omitempty"          validate:"omitempty,gte=4,lte=9"`
	ExamDate            *string  `json:"exam_date,omitempty"`
	DailyStudyMinutes   *int     `json:"daily_study_minutes,omitempty"  validate:"omitempty,gte=15,lte=480"`
	OnboardingCompleted *bool    `json:"onboarding_completed,omitempty"`
}

// AssessmentRequest defines the payload for the onboarding diagnostic.
// Levels maps skill names to 0-100 proficiency levels.
type AssessmentRequest struct {
	Levels map[string]int `json:"levels" validate:"required,min=1"`
}
