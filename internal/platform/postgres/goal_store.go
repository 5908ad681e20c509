package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/platform/logger"
	"github.com/phrazzld/pace-api/internal/store"
)

// goalColumns is the select list shared by all goal record reads.
const goalColumns = `
	id, user_id, goal_date, day_number, week_number, title, description,
	skill_focus, goal_type, difficulty_level, duration_minutes, pacing_mode,
	content, completed, completed_at, score, time_spent_minutes,
	created_at, updated_at
`

// PostgresGoalStore implements the store.GoalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGoalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGoalStore creates a new PostgreSQL implementation of the GoalStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresGoalStore(db store.DBTX, logger *slog.Logger) *PostgresGoalStore {
	// ALLOW-PANIC: Constructor enforces required dependency
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGoalStore{
		db:     db,
		logger: logger.With(slog.String("component", "goal_store")),
	}
}

// Ensure PostgresGoalStore implements store.GoalStore interface
var _ store.GoalStore = (*PostgresGoalStore)(nil)

// WithTx implements store.GoalStore.WithTx
func (s *PostgresGoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return &PostgresGoalStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.GoalStore.Create
// Returns store.ErrGoalExists if a non-recovery record already exists for
// the user and date.
func (s *PostgresGoalStore) Create(ctx context.Context, record *domain.DailyGoalRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("goal record validation failed during create",
			slog.String("error", err.Error()),
			slog.String("goal_id", record.ID.String()))
		return err
	}

	content, err := json.Marshal(record.Goal.Content)
	if err != nil {
		return fmt.Errorf("failed to encode goal content: %w", err)
	}

	query := `
		INSERT INTO daily_goals (id, user_id, goal_date, day_number, week_number,
			title, description, skill_focus, goal_type, difficulty_level,
			duration_minutes, pacing_mode, content, completed, completed_at,
			score, time_spent_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.GoalDate,
		record.Goal.DayNumber,
		record.Goal.WeekNumber,
		record.Goal.Title,
		record.Goal.Description,
		record.Goal.SkillFocus,
		record.Goal.GoalType,
		record.Goal.DifficultyLevel,
		record.Goal.DurationMinutes,
		record.Goal.PacingMode,
		content,
		record.Completed,
		nullableTime(record.CompletedAt),
		nullableInt(record.Score),
		nullableInt(record.TimeSpentMinutes),
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("goal already exists for date",
				slog.String("user_id", record.UserID.String()),
				slog.Time("goal_date", record.GoalDate))
			return store.ErrGoalExists
		}
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, record.UserID)
		}

		log.Error("failed to create goal record",
			slog.String("error", err.Error()),
			slog.String("goal_id", record.ID.String()))
		return MapError(err)
	}

	log.Info("goal record created",
		slog.String("goal_id", record.ID.String()),
		slog.String("user_id", record.UserID.String()),
		slog.String("goal_type", string(record.Goal.GoalType)),
		slog.Int("day_number", record.Goal.DayNumber))
	return nil
}

// GetByID implements store.GoalStore.GetByID
// Returns store.ErrGoalNotFound if the record does not exist.
func (s *PostgresGoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error) {
	query := `SELECT ` + goalColumns + ` FROM daily_goals WHERE id = $1`
	return s.scanOne(ctx, query, id)
}

// GetForDate implements store.GoalStore.GetForDate
// Recovery records are excluded: they share the date with the day's
// regular goal but never stand in for it.
// Returns store.ErrGoalNotFound if no record exists for that date.
func (s *PostgresGoalStore) GetForDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*domain.DailyGoalRecord, error) {
	query := `SELECT ` + goalColumns + `
		FROM daily_goals
		WHERE user_id = $1 AND goal_date = $2 AND goal_type <> 'recovery'`
	return s.scanOne(ctx, query, userID, domain.DateOf(date))
}

// GetForUpdate implements store.GoalStore.GetForUpdate
// Must be called within a transaction; the lock is released at commit or
// rollback. Returns store.ErrGoalNotFound if the record does not exist.
func (s *PostgresGoalStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error) {
	query := `SELECT ` + goalColumns + ` FROM daily_goals WHERE id = $1 FOR UPDATE`
	return s.scanOne(ctx, query, id)
}

// SaveCompletion implements store.GoalStore.SaveCompletion
// Returns store.ErrGoalNotFound if the record does not exist.
func (s *PostgresGoalStore) SaveCompletion(ctx context.Context, record *domain.DailyGoalRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE daily_goals
		SET completed = $2, completed_at = $3, score = $4,
			time_spent_minutes = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.Completed,
		nullableTime(record.CompletedAt),
		nullableInt(record.Score),
		nullableInt(record.TimeSpentMinutes),
		record.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to save goal completion",
			slog.String("error", err.Error()),
			slog.String("goal_id", record.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "daily goal"); err != nil {
		return store.ErrGoalNotFound
	}

	log.Info("goal completion saved",
		slog.String("goal_id", record.ID.String()),
		slog.String("user_id", record.UserID.String()))
	return nil
}

// ListCompleted implements store.GoalStore.ListCompleted
func (s *PostgresGoalStore) ListCompleted(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.DailyGoalRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + goalColumns + `
		FROM daily_goals
		WHERE user_id = $1 AND completed = TRUE
		ORDER BY completed_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to list completed goals",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.DailyGoalRecord
	for rows.Next() {
		record, err := scanGoalRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// ListCompletionDatesSince implements store.GoalStore.ListCompletionDatesSince
func (s *PostgresGoalStore) ListCompletionDatesSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT completed_at
		FROM daily_goals
		WHERE user_id = $1 AND completed = TRUE AND completed_at >= $2
		ORDER BY completed_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since.UTC())
	if err != nil {
		log.Error("failed to list completion dates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var completedAt time.Time
		if err := rows.Scan(&completedAt); err != nil {
			return nil, MapError(err)
		}
		dates = append(dates, completedAt.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return dates, nil
}

// CountCompleted implements store.GoalStore.CountCompleted
func (s *PostgresGoalStore) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	query := `SELECT COUNT(*) FROM daily_goals
		WHERE user_id = $1 AND completed = TRUE AND goal_type <> 'recovery'`
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		log.Error("failed to count completed goals",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// scanOne runs a single-record query and maps the row.
func (s *PostgresGoalStore) scanOne(ctx context.Context, query string, args ...any) (*domain.DailyGoalRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := scanGoalRecord(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGoalNotFound
		}
		log.Error("failed to get goal record",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return record, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanGoalRecord maps one daily_goals row onto the domain record.
func scanGoalRecord(row rowScanner) (*domain.DailyGoalRecord, error) {
	var record domain.DailyGoalRecord
	var content []byte
	var completedAt sql.NullTime
	var score, timeSpent sql.NullInt64

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.GoalDate,
		&record.Goal.DayNumber,
		&record.Goal.WeekNumber,
		&record.Goal.Title,
		&record.Goal.Description,
		&record.Goal.SkillFocus,
		&record.Goal.GoalType,
		&record.Goal.DifficultyLevel,
		&record.Goal.DurationMinutes,
		&record.Goal.PacingMode,
		&content,
		&record.Completed,
		&completedAt,
		&score,
		&timeSpent,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(content, &record.Goal.Content); err != nil {
		return nil, fmt.Errorf("failed to decode goal content: %w", err)
	}

	record.GoalDate = record.GoalDate.UTC()
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		record.CompletedAt = &t
	}
	if score.Valid {
		v := int(score.Int64)
		record.Score = &v
	}
	if timeSpent.Valid {
		v := int(timeSpent.Int64)
		record.TimeSpentMinutes = &v
	}

	return &record, nil
}

// nullableInt converts an optional int to its SQL representation.
func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
