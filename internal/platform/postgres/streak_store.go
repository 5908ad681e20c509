package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/platform/logger"
	"github.com/phrazzld/pace-api/internal/store"
)

// PostgresStreakStore implements the store.StreakStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStreakStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStreakStore creates a new PostgreSQL implementation of the StreakStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStreakStore(db store.DBTX, logger *slog.Logger) *PostgresStreakStore {
	// ALLOW-PANIC: Constructor enforces required dependency
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStreakStore{
		db:     db,
		logger: logger.With(slog.String("component", "streak_store")),
	}
}

// Ensure PostgresStreakStore implements store.StreakStore interface
var _ store.StreakStore = (*PostgresStreakStore)(nil)

// WithTx implements store.StreakStore.WithTx
func (s *PostgresStreakStore) WithTx(tx *sql.Tx) store.StreakStore {
	return &PostgresStreakStore{
		db:     tx,
		logger: s.logger,
	}
}

// Get implements store.StreakStore.Get
// Returns store.ErrStreakNotFound if no state exists yet.
func (s *PostgresStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.StreakState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, current_streak, longest_streak, last_activity_date, updated_at
		FROM user_streaks
		WHERE user_id = $1
	`

	var streak domain.StreakState
	var lastActivity sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.Current,
		&streak.Longest,
		&lastActivity,
		&streak.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("streak not found", slog.String("user_id", userID.String()))
			return nil, store.ErrStreakNotFound
		}
		log.Error("failed to get streak",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if lastActivity.Valid {
		t := lastActivity.Time.UTC()
		streak.LastActivityDate = &t
	}

	return &streak, nil
}

// Upsert implements store.StreakStore.Upsert
func (s *PostgresStreakStore) Upsert(ctx context.Context, streak *domain.StreakState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := streak.Validate(); err != nil {
		log.Warn("streak validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return err
	}

	query := `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_activity_date, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET current_streak = EXCLUDED.current_streak,
			longest_streak = GREATEST(user_streaks.longest_streak, EXCLUDED.longest_streak),
			last_activity_date = EXCLUDED.last_activity_date,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		streak.UserID,
		streak.Current,
		streak.Longest,
		nullableTime(streak.LastActivityDate),
		streak.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.NewStoreError("streak", "upsert", "user does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to upsert streak",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return MapError(err)
	}

	log.Debug("streak upserted",
		slog.String("user_id", streak.UserID.String()),
		slog.Int("current", streak.Current),
		slog.Int("longest", streak.Longest))
	return nil
}
