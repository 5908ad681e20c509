package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
)

// ProfileUpdate carries a partial profile update. Nil fields are left
// unchanged, so callers can adjust one preference without rewriting the
// whole profile.
type ProfileUpdate struct {
	DisplayName         *string
	TargetBand          *float64
	ExamDate            *sql.NullTime
	DailyStudyMinutes   *int
	OnboardingCompleted *bool
}

// ProfileStore defines the interface for profile data persistence.
type ProfileStore interface {
	// Create saves a new profile to the store.
	// Returns validation errors from the domain Profile if data is invalid.
	// Returns ErrDuplicate if the user already has a profile.
	Create(ctx context.Context, profile *domain.Profile) error

	// Get retrieves the profile for the given user.
	// Returns ErrProfileNotFound if no profile exists.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Update applies a partial update to the user's profile.
	// Returns ErrProfileNotFound if no profile exists.
	// Returns validation errors if the resulting profile is invalid.
	Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error)

	// WithTx returns a new ProfileStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ProfileStore
}
