package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
)

// GoalStore defines the interface for daily goal record persistence.
type GoalStore interface {
	// Create saves a new goal record.
	// Returns ErrGoalExists if a non-recovery record already exists for
	// the user and date.
	// Returns validation errors from the domain record if data is invalid.
	Create(ctx context.Context, record *domain.DailyGoalRecord) error

	// GetByID retrieves a goal record by its unique ID.
	// Returns ErrGoalNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error)

	// GetForDate retrieves the user's non-recovery goal record for the
	// given calendar date.
	// Returns ErrGoalNotFound if no record exists for that date.
	GetForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyGoalRecord, error)

	// GetForUpdate retrieves a goal record by ID with a row-level lock,
	// blocking concurrent completion attempts until the transaction ends.
	// Must be called within a transaction (via WithTx).
	// Returns ErrGoalNotFound if the record does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error)

	// SaveCompletion persists the completion fields of a record that has
	// been marked completed.
	// Returns ErrGoalNotFound if the record does not exist.
	SaveCompletion(ctx context.Context, record *domain.DailyGoalRecord) error

	// ListCompleted returns the user's completed goal records, most
	// recently completed first, up to limit.
	ListCompleted(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.DailyGoalRecord, error)

	// ListCompletionDatesSince returns the completion timestamps for the
	// user since the given time, most recent first. Used for attendance
	// analysis without loading full records.
	ListCompletionDatesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)

	// CountCompleted returns how many goals the user has completed,
	// excluding recovery sessions. Recovery work does not advance the
	// day counter, so it never contributes to this count.
	CountCompleted(ctx context.Context, userID uuid.UUID) (int, error)

	// WithTx returns a new GoalStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) GoalStore
}
