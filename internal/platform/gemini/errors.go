package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when the bank is constructed with an
	// unusable configuration.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrInvalidResponse is returned when the API responds with content
	// that cannot be parsed into questions.
	ErrInvalidResponse = errors.New("invalid response from gemini")

	// ErrContentBlocked is returned when the API refuses to generate
	// content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrTransientFailure is returned when the API keeps failing after
	// all retry attempts.
	ErrTransientFailure = errors.New("transient gemini failure")
)
