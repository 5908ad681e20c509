package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/platform/logger"
	"github.com/phrazzld/pace-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	// ALLOW-PANIC: Constructor enforces required dependency
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProfileStore.Create
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (user_id, display_name, target_band, exam_date,
			daily_study_minutes, onboarding_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.UserID,
		profile.DisplayName,
		profile.TargetBand,
		nullableTime(profile.ExamDate),
		profile.DailyStudyMinutes,
		profile.OnboardingCompleted,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully",
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// Get implements store.ProfileStore.Get
// Returns store.ErrProfileNotFound if no profile exists.
func (s *PostgresProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, display_name, target_band, exam_date,
			daily_study_minutes, onboarding_completed, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile domain.Profile
	var examDate sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.TargetBand,
		&examDate,
		&profile.DailyStudyMinutes,
		&profile.OnboardingCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if examDate.Valid {
		t := examDate.Time.UTC()
		profile.ExamDate = &t
	}

	return &profile, nil
}

// Update implements store.ProfileStore.Update
// It loads the current profile, applies the partial update, validates the
// result, and writes it back. Callers needing atomicity against concurrent
// updates should run it inside a transaction via WithTx.
func (s *PostgresProfileStore) Update(
	ctx context.Context,
	userID uuid.UUID,
	update store.ProfileUpdate,
) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
	}
	if update.TargetBand != nil {
		profile.TargetBand = *update.TargetBand
	}
	if update.ExamDate != nil {
		if update.ExamDate.Valid {
			t := update.ExamDate.Time.UTC()
			profile.ExamDate = &t
		} else {
			profile.ExamDate = nil
		}
	}
	if update.DailyStudyMinutes != nil {
		profile.DailyStudyMinutes = *update.DailyStudyMinutes
	}
	if update.OnboardingCompleted != nil {
		profile.OnboardingCompleted = *update.OnboardingCompleted
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	query := `
		UPDATE profiles
		SET display_name = $2, target_band = $3, exam_date = $4,
			daily_study_minutes = $5, onboarding_completed = $6, updated_at = $7
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.UserID,
		profile.DisplayName,
		profile.TargetBand,
		nullableTime(profile.ExamDate),
		profile.DailyStudyMinutes,
		profile.OnboardingCompleted,
		profile.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, "profile"); err != nil {
		return nil, store.ErrProfileNotFound
	}

	log.Info("profile updated successfully",
		slog.String("user_id", userID.String()))
	return profile, nil
}

// nullableTime converts an optional timestamp to its SQL representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
