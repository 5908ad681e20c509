package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/platform/logger"
	"github.com/phrazzld/pace-api/internal/store"
)

// skillColumns maps each scored skill to its level column. An explicit
// enumeration keeps column names out of caller-supplied strings.
var skillColumns = map[domain.Skill]string{
	domain.SkillListening: "listening_level",
	domain.SkillReading:   "reading_level",
	domain.SkillWriting:   "writing_level",
	domain.SkillSpeaking:  "speaking_level",
}

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	// ALLOW-PANIC: Constructor enforces required dependency
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProgressStore.Create
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()))
		return err
	}

	query := `
		INSERT INTO user_progress (user_id, listening_level, reading_level,
			writing_level, speaking_level, estimated_band, last_assessment_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.Level(domain.SkillListening),
		progress.Level(domain.SkillReading),
		progress.Level(domain.SkillWriting),
		progress.Level(domain.SkillSpeaking),
		progress.EstimatedBand,
		nullableTime(progress.LastAssessmentAt),
		progress.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()))
		return MapError(err)
	}

	log.Info("progress created successfully",
		slog.String("user_id", progress.UserID.String()))
	return nil
}

// Get implements store.ProgressStore.Get
// Returns store.ErrProgressNotFound if no record exists.
func (s *PostgresProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, listening_level, reading_level, writing_level,
			speaking_level, estimated_band, last_assessment_at, updated_at
		FROM user_progress
		WHERE user_id = $1
	`

	progress := domain.Progress{Levels: make(map[domain.Skill]int, 4)}
	var listening, reading, writing, speaking int
	var lastAssessment sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&progress.UserID,
		&listening,
		&reading,
		&writing,
		&speaking,
		&progress.EstimatedBand,
		&lastAssessment,
		&progress.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	progress.Levels[domain.SkillListening] = listening
	progress.Levels[domain.SkillReading] = reading
	progress.Levels[domain.SkillWriting] = writing
	progress.Levels[domain.SkillSpeaking] = speaking

	if lastAssessment.Valid {
		t := lastAssessment.Time.UTC()
		progress.LastAssessmentAt = &t
	}

	return &progress, nil
}

// SetLevels implements store.ProgressStore.SetLevels
// Returns store.ErrProgressNotFound if no record exists.
func (s *PostgresProgressStore) SetLevels(
	ctx context.Context,
	userID uuid.UUID,
	levels map[domain.Skill]int,
	estimatedBand float64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for skill, level := range levels {
		if _, ok := skillColumns[skill]; !ok {
			return fmt.Errorf("%w: skill %q has no stored level", store.ErrInvalidEntity, skill)
		}
		if level < 0 || level > 100 {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidSkillLevel)
		}
	}

	now := time.Now().UTC()
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	for skill, level := range levels {
		current.Levels[skill] = level
	}

	query := `
		UPDATE user_progress
		SET listening_level = $2, reading_level = $3, writing_level = $4,
			speaking_level = $5, estimated_band = $6, last_assessment_at = $7,
			updated_at = $8
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		userID,
		current.Levels[domain.SkillListening],
		current.Levels[domain.SkillReading],
		current.Levels[domain.SkillWriting],
		current.Levels[domain.SkillSpeaking],
		estimatedBand,
		now,
		now,
	)

	if err != nil {
		log.Error("failed to set progress levels",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "progress"); err != nil {
		return store.ErrProgressNotFound
	}

	log.Info("progress levels updated",
		slog.String("user_id", userID.String()))
	return nil
}

// BumpSkillLevel implements store.ProgressStore.BumpSkillLevel
// The write uses GREATEST so the stored level never decreases, and LEAST
// to cap it at 100. Returns store.ErrProgressNotFound if no record exists.
func (s *PostgresProgressStore) BumpSkillLevel(
	ctx context.Context,
	userID uuid.UUID,
	skill domain.Skill,
	level int,
	assessedAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, ok := skillColumns[skill]
	if !ok {
		return fmt.Errorf("%w: skill %q has no stored level", store.ErrInvalidEntity, skill)
	}

	// column comes from the fixed skillColumns map, never from input.
	query := fmt.Sprintf(`
		UPDATE user_progress
		SET %s = GREATEST(%s, LEAST(100, $2)),
			last_assessment_at = $3,
			updated_at = $3
		WHERE user_id = $1
	`, column, column)

	result, err := s.db.ExecContext(ctx, query, userID, level, assessedAt.UTC())
	if err != nil {
		log.Error("failed to bump skill level",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("skill", string(skill)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "progress"); err != nil {
		return store.ErrProgressNotFound
	}

	log.Debug("skill level bumped",
		slog.String("user_id", userID.String()),
		slog.String("skill", string(skill)),
		slog.Int("candidate_level", level))
	return nil
}
