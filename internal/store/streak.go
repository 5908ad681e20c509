package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
)

// StreakStore defines the interface for streak state persistence.
type StreakStore interface {
	// Get retrieves the user's streak state.
	// Returns ErrStreakNotFound if no state exists yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.StreakState, error)

	// Upsert writes the streak state, creating it on first use.
	// Returns validation errors from the domain StreakState if data is invalid.
	Upsert(ctx context.Context, streak *domain.StreakState) error

	// WithTx returns a new StreakStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) StreakStore
}
