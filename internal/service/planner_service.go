package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/domain/momentum"
	"github.com/phrazzld/pace-api/internal/domain/pacing"
	"github.com/phrazzld/pace-api/internal/store"
)

// PlannerServiceError is a custom error type for planner service errors.
type PlannerServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PlannerServiceError.
func (e *PlannerServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("planner service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("planner service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PlannerServiceError) Unwrap() error {
	return e.Err
}

// NewPlannerServiceError creates a new PlannerServiceError.
func NewPlannerServiceError(operation, message string, err error) *PlannerServiceError {
	return &PlannerServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// recentScoreSample bounds how many completed goals feed the performance
// snapshot used for focus selection and session-time averages.
const recentScoreSample = 10

// CompletionResult bundles the outcome of completing a goal: the updated
// record plus the streak state after the completion was counted.
type CompletionResult struct {
	Record *domain.DailyGoalRecord `json:"record"`
	Streak *domain.StreakState     `json:"streak"`
}

// PlannerService provides the daily study plan operations: fetching or
// generating today's goal, recording completions, and starting recovery
// sessions after missed days.
type PlannerService interface {
	// GetTodayGoal returns the user's goal for the current calendar day,
	// generating and persisting one if none exists yet. Repeated calls on
	// the same day return the same record.
	// Returns ErrProfileIncomplete if the user has not finished onboarding.
	GetTodayGoal(ctx context.Context, userID uuid.UUID) (*domain.DailyGoalRecord, error)

	// CompleteGoal records a completion outcome for the goal, advances the
	// user's streak, and raises the focused skill's proficiency level.
	// Returns store.ErrGoalNotFound if the goal does not exist,
	// ErrNotOwned if it belongs to another user, and
	// ErrGoalAlreadyCompleted on a repeat submission.
	CompleteGoal(ctx context.Context, userID, goalID uuid.UUID, score, timeSpentMinutes int) (*CompletionResult, error)

	// StartRecoverySession generates and persists a catch-up goal sized to
	// the number of missed days. Recovery goals sit outside the daily
	// sequence, so one can coexist with a regular goal on the same date.
	StartRecoverySession(ctx context.Context, userID uuid.UUID, missedDays int) (*domain.DailyGoalRecord, error)

	// ListCompletedGoals returns the user's completed goals, most recent
	// first, up to limit.
	ListCompletedGoals(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.DailyGoalRecord, error)
}

// PlannerServiceImpl implements the PlannerService interface.
type PlannerServiceImpl struct {
	db            *sql.DB
	goalStore     store.GoalStore
	profileStore  store.ProfileStore
	progressStore store.ProgressStore
	streakStore   store.StreakStore
	pacer         pacing.Service
	logger        *slog.Logger
	timeFunc      func() time.Time                               // Injectable for testing
	runTx         func(ctx context.Context, fn store.TxFn) error // Injectable for testing
}

// Compile-time check that PlannerServiceImpl implements PlannerService
var _ PlannerService = (*PlannerServiceImpl)(nil)

// NewPlannerService creates a new PlannerService.
func NewPlannerService(
	db *sql.DB,
	goalStore store.GoalStore,
	profileStore store.ProfileStore,
	progressStore store.ProgressStore,
	streakStore store.StreakStore,
	pacer pacing.Service,
	logger *slog.Logger,
) *PlannerServiceImpl {
	// ALLOW-PANIC: Constructor enforces required dependencies
	if goalStore == nil {
		panic("goalStore cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if streakStore == nil {
		panic("streakStore cannot be nil")
	}
	if pacer == nil {
		panic("pacer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	s := &PlannerServiceImpl{
		db:            db,
		goalStore:     goalStore,
		profileStore:  profileStore,
		progressStore: progressStore,
		streakStore:   streakStore,
		pacer:         pacer,
		logger:        logger.With(slog.String("component", "planner_service")),
		timeFunc:      time.Now,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// GetTodayGoal returns the user's goal for the current calendar day,
// generating one if necessary.
func (s *PlannerServiceImpl) GetTodayGoal(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.DailyGoalRecord, error) {
	now := s.timeFunc()
	today := domain.DateOf(now)

	record, err := s.goalStore.GetForDate(ctx, userID, today)
	if err == nil {
		s.logger.Debug("returning existing goal for today",
			"user_id", userID,
			"goal_id", record.ID)
		return record, nil
	}
	if !errors.Is(err, store.ErrGoalNotFound) {
		s.logger.Error("failed to look up today's goal",
			"error", err,
			"user_id", userID)
		return nil, NewPlannerServiceError("get_today_goal", "failed to look up today's goal", err)
	}

	profile, err := s.profileStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		s.logger.Error("failed to load profile for goal generation",
			"error", err,
			"user_id", userID)
		return nil, NewPlannerServiceError("get_today_goal", "failed to load profile", err)
	}
	if !profile.OnboardingCompleted || profile.ExamDate == nil {
		return nil, ErrProfileIncomplete
	}

	perf, err := s.loadPerformance(ctx, userID, now)
	if err != nil {
		return nil, NewPlannerServiceError("get_today_goal", "failed to load performance snapshot", err)
	}

	dayNumber := perf.CompletedGoals + 1
	goal, err := s.pacer.GenerateDailyGoal(ctx, dayNumber, *profile.ExamDate, perf, profile.DailyStudyMinutes, now)
	if err != nil {
		s.logger.Error("failed to generate daily goal",
			"error", err,
			"user_id", userID,
			"day_number", dayNumber)
		return nil, NewPlannerServiceError("get_today_goal", "failed to generate goal", err)
	}

	record, err = domain.NewDailyGoalRecord(userID, today, *goal)
	if err != nil {
		return nil, NewPlannerServiceError("get_today_goal", "generated goal produced invalid record", err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.goalStore.WithTx(tx).Create(ctx, record)
	})
	if err != nil {
		// A concurrent request may have created today's goal between the
		// lookup and the insert. Return that winner instead of failing.
		if errors.Is(err, store.ErrGoalExists) {
			existing, getErr := s.goalStore.GetForDate(ctx, userID, today)
			if getErr == nil {
				s.logger.Debug("concurrent request already created today's goal",
					"user_id", userID,
					"goal_id", existing.ID)
				return existing, nil
			}
		}
		s.logger.Error("failed to save generated goal",
			"error", err,
			"user_id", userID)
		return nil, NewPlannerServiceError("get_today_goal", "failed to save generated goal", err)
	}

	s.logger.Info("generated new daily goal",
		"user_id", userID,
		"goal_id", record.ID,
		"day_number", goal.DayNumber,
		"skill_focus", goal.SkillFocus,
		"pacing_mode", goal.PacingMode)

	return record, nil
}

// CompleteGoal records a completion and its side effects atomically: the
// goal's completion fields, the streak advance, and the skill level bump
// all land in one transaction.
func (s *PlannerServiceImpl) CompleteGoal(
	ctx context.Context,
	userID, goalID uuid.UUID,
	score, timeSpentMinutes int,
) (*CompletionResult, error) {
	now := s.timeFunc()
	result := &CompletionResult{}

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txGoals := s.goalStore.WithTx(tx)

		record, err := txGoals.GetForUpdate(ctx, goalID)
		if err != nil {
			return err
		}
		if record.UserID != userID {
			return ErrNotOwned
		}
		if record.Completed {
			return ErrGoalAlreadyCompleted
		}

		if err := record.MarkCompleted(score, timeSpentMinutes, now); err != nil {
			return err
		}
		if err := txGoals.SaveCompletion(ctx, record); err != nil {
			return fmt.Errorf("failed to save completion: %w", err)
		}

		streak, err := s.advanceStreak(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		if err := s.bumpSkillLevel(ctx, tx, userID, record.Goal, score, now); err != nil {
			return err
		}

		result.Record = record
		result.Streak = streak
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrGoalNotFound) ||
			errors.Is(err, ErrNotOwned) ||
			errors.Is(err, ErrGoalAlreadyCompleted) ||
			errors.Is(err, domain.ErrInvalidScore) ||
			errors.Is(err, domain.ErrInvalidTimeSpent) {
			return nil, err
		}
		s.logger.Error("failed to complete goal",
			"error", err,
			"user_id", userID,
			"goal_id", goalID)
		return nil, NewPlannerServiceError("complete_goal", "transaction failed", err)
	}

	s.logger.Info("goal completed",
		"user_id", userID,
		"goal_id", goalID,
		"score", score,
		"current_streak", result.Streak.Current)

	return result, nil
}

// StartRecoverySession generates and persists a catch-up goal.
func (s *PlannerServiceImpl) StartRecoverySession(
	ctx context.Context,
	userID uuid.UUID,
	missedDays int,
) (*domain.DailyGoalRecord, error) {
	now := s.timeFunc()

	// The pacing mode softens recovery length, nothing more, so a missing
	// exam date falls back to balanced instead of blocking the session.
	mode := domain.PacingBalanced
	profile, err := s.profileStore.Get(ctx, userID)
	if err == nil && profile.ExamDate != nil {
		mode = s.pacer.Mode(*profile.ExamDate, now)
	} else if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		s.logger.Error("failed to load profile for recovery session",
			"error", err,
			"user_id", userID)
		return nil, NewPlannerServiceError("start_recovery", "failed to load profile", err)
	}

	perf, err := s.loadPerformance(ctx, userID, now)
	if err != nil {
		return nil, NewPlannerServiceError("start_recovery", "failed to load performance snapshot", err)
	}

	goal, err := s.pacer.GenerateRecoverySession(ctx, missedDays, mode, perf)
	if err != nil {
		return nil, NewPlannerServiceError("start_recovery", "failed to generate recovery session", err)
	}

	record, err := domain.NewDailyGoalRecord(userID, domain.DateOf(now), *goal)
	if err != nil {
		return nil, NewPlannerServiceError("start_recovery", "generated session produced invalid record", err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.goalStore.WithTx(tx).Create(ctx, record)
	})
	if err != nil {
		s.logger.Error("failed to save recovery session",
			"error", err,
			"user_id", userID)
		return nil, NewPlannerServiceError("start_recovery", "failed to save recovery session", err)
	}

	s.logger.Info("recovery session started",
		"user_id", userID,
		"goal_id", record.ID,
		"missed_days", missedDays,
		"duration_minutes", goal.DurationMinutes)

	return record, nil
}

// ListCompletedGoals returns the user's completed goals, most recent first.
func (s *PlannerServiceImpl) ListCompletedGoals(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.DailyGoalRecord, error) {
	if limit <= 0 {
		limit = recentScoreSample
	}

	records, err := s.goalStore.ListCompleted(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to list completed goals",
			"error", err,
			"user_id", userID)
		return nil, NewPlannerServiceError("list_completed", "failed to list completed goals", err)
	}

	return records, nil
}

// loadPerformance assembles the read-side snapshot the pacing engine
// consumes. A user with no progress row yet gets baseline levels rather
// than an error, so goal generation works from day one.
func (s *PlannerServiceImpl) loadPerformance(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*domain.UserPerformance, error) {
	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}
		progress, err = domain.NewProgress(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to build baseline progress: %w", err)
		}
	}

	completed, err := s.goalStore.ListCompleted(ctx, userID, recentScoreSample)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent completions: %w", err)
	}

	totalCompleted, err := s.goalStore.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	since := now.AddDate(0, 0, -momentum.LookbackDays)
	dates, err := s.goalStore.ListCompletionDatesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion dates: %w", err)
	}
	report := momentum.Analyze(dates, now)

	perf := &domain.UserPerformance{
		Levels:         progress.Levels,
		RecentScores:   make([]domain.SkillScore, 0, len(completed)),
		CompletedGoals: totalCompleted,
		MissedDays:     report.MissedDays,
	}

	var minutes, sessions int
	for _, record := range completed {
		if record.Score == nil || record.CompletedAt == nil {
			continue
		}
		perf.RecentScores = append(perf.RecentScores, domain.SkillScore{
			Skill:      record.Goal.SkillFocus,
			Score:      *record.Score,
			RecordedAt: *record.CompletedAt,
		})
		if record.TimeSpentMinutes != nil {
			minutes += *record.TimeSpentMinutes
			sessions++
		}
	}
	if sessions > 0 {
		perf.AverageSessionMinutes = minutes / sessions
	}

	return perf, nil
}

// advanceStreak applies a completion to the user's streak state inside the
// completion transaction.
func (s *PlannerServiceImpl) advanceStreak(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	now time.Time,
) (*domain.StreakState, error) {
	txStreaks := s.streakStore.WithTx(tx)

	streak, err := txStreaks.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrStreakNotFound) {
			return nil, fmt.Errorf("failed to load streak: %w", err)
		}
		streak, err = domain.NewStreakState(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to create streak: %w", err)
		}
	}

	streak.RecordActivity(now)
	if err := txStreaks.Upsert(ctx, streak); err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}

	return streak, nil
}

// bumpSkillLevel raises the focused skill's proficiency after a completion.
// Mixed sessions and recovery sessions have no single skill to credit, so
// they leave levels untouched.
func (s *PlannerServiceImpl) bumpSkillLevel(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	goal domain.AdaptiveGoal,
	score int,
	now time.Time,
) error {
	if goal.SkillFocus == domain.SkillMixed || goal.IsRecovery() {
		return nil
	}

	txProgress := s.progressStore.WithTx(tx)

	progress, err := txProgress.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProgressNotFound) {
			s.logger.Warn("skipping skill bump, no progress record",
				"user_id", userID,
				"skill", goal.SkillFocus)
			return nil
		}
		return fmt.Errorf("failed to load progress for skill bump: %w", err)
	}

	gain := int(math.Round(float64(score) / 100.0 * 10.0))
	candidate := progress.Level(goal.SkillFocus) + gain
	if err := txProgress.BumpSkillLevel(ctx, userID, goal.SkillFocus, candidate, now); err != nil {
		return fmt.Errorf("failed to bump skill level: %w", err)
	}

	return nil
}
