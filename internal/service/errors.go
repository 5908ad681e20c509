// Package service provides application-level services for managing study
// plans, goal completion, and progress insights.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrProfileIncomplete indicates the user has not finished onboarding, so no
	// exam date or study preferences are available to plan against.
	// API layer should map this to HTTP 409 Conflict.
	ErrProfileIncomplete = errors.New("user profile is incomplete")

	// ErrGoalAlreadyCompleted indicates a completion was submitted for a goal
	// that has already been completed.
	// API layer should map this to HTTP 409 Conflict.
	ErrGoalAlreadyCompleted = errors.New("goal has already been completed")
)
