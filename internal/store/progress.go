package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
)

// ProgressStore defines the interface for skill proficiency persistence.
type ProgressStore interface {
	// Create saves a new progress record with baseline levels.
	// Returns validation errors from the domain Progress if data is invalid.
	// Returns ErrDuplicate if the user already has a progress record.
	Create(ctx context.Context, progress *domain.Progress) error

	// Get retrieves the progress record for the given user.
	// Returns ErrProgressNotFound if no record exists.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Progress, error)

	// SetLevels replaces the user's skill levels, typically after the
	// onboarding diagnostic. Mixed is not a storable skill.
	// Returns ErrProgressNotFound if no record exists.
	SetLevels(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int, estimatedBand float64) error

	// BumpSkillLevel raises one skill's level to the given value if it is
	// higher than the stored one. Levels never decrease through this
	// path, so a bad day cannot erase earned progress.
	// Returns ErrProgressNotFound if no record exists.
	BumpSkillLevel(ctx context.Context, userID uuid.UUID, skill domain.Skill, level int, assessedAt time.Time) error

	// WithTx returns a new ProgressStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ProgressStore
}
