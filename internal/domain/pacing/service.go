// Package pacing implements the adaptive goal generation algorithm. It
// derives each study day's skill focus, difficulty, and duration from the
// exam date and the learner's observed performance.
package pacing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pace-api/internal/content"
	"github.com/phrazzld/pace-api/internal/domain"
)

// Common errors
var (
	ErrNilPerformance = errors.New("user performance cannot be nil")
	ErrInvalidDay     = errors.New("day number must be at least 1")
	ErrNoExamDate     = errors.New("exam date is required")
	ErrInvalidMissed  = errors.New("missed days must be at least 1")
)

// Service defines the interface for adaptive goal generation.
type Service interface {
	// GenerateDailyGoal composes the goal for the given study day from the
	// learner's exam date, performance, and daily time preference.
	GenerateDailyGoal(
		ctx context.Context,
		dayNumber int,
		examDate time.Time,
		perf *domain.UserPerformance,
		preferredMinutes int,
		now time.Time,
	) (*domain.AdaptiveGoal, error)

	// GenerateRecoverySession composes a short catch-up goal after one or
	// more missed study days.
	GenerateRecoverySession(
		ctx context.Context,
		missedDays int,
		mode domain.PacingMode,
		perf *domain.UserPerformance,
	) (*domain.AdaptiveGoal, error)

	// Mode classifies the pacing mode for an exam date.
	Mode(examDate, now time.Time) domain.PacingMode
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
	bank   content.Bank
	logger *slog.Logger
}

// Compile-time check that defaultService implements Service
var _ Service = (*defaultService)(nil)

// NewService creates a pacing service with default parameters.
func NewService(bank content.Bank, logger *slog.Logger) Service {
	return NewServiceWithParams(NewDefaultParams(), bank, logger)
}

// NewServiceWithParams creates a pacing service with custom parameters.
func NewServiceWithParams(params *Params, bank content.Bank, logger *slog.Logger) Service {
	// ALLOW-PANIC: Constructor enforces required dependencies
	if params == nil {
		panic("params cannot be nil")
	}
	if bank == nil {
		panic("bank cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &defaultService{
		params: params,
		bank:   bank,
		logger: logger.With(slog.String("component", "pacing_service")),
	}
}

// Mode implements the Service interface.
func (s *defaultService) Mode(examDate, now time.Time) domain.PacingMode {
	return classifyPacing(daysUntilExam(examDate, now), s.params)
}

// GenerateDailyGoal implements the Service interface.
func (s *defaultService) GenerateDailyGoal(
	ctx context.Context,
	dayNumber int,
	examDate time.Time,
	perf *domain.UserPerformance,
	preferredMinutes int,
	now time.Time,
) (*domain.AdaptiveGoal, error) {
	if perf == nil {
		return nil, ErrNilPerformance
	}
	if dayNumber < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDay, dayNumber)
	}
	if examDate.IsZero() {
		return nil, ErrNoExamDate
	}
	if preferredMinutes <= 0 {
		preferredMinutes = domain.DefaultDailyStudyMinutes
	}

	weekNumber := (dayNumber + 6) / 7
	mode := s.Mode(examDate, now)
	goalType := adviseGoalType(weekNumber, mode)
	skillFocus := selectSkillFocus(perf, weekNumber, s.params)

	questions := s.sourceQuestions(ctx, content.Request{
		Skill:      skillFocus,
		Difficulty: content.DifficultyForGoalType(goalType),
		Count:      s.params.MaxAssessmentQuestions,
		Seed:       int64(dayNumber),
	})

	title, description, payload := composeContent(skillFocus, questions, s.params)

	goal := &domain.AdaptiveGoal{
		DayNumber:       dayNumber,
		WeekNumber:      weekNumber,
		Title:           title,
		Description:     description,
		SkillFocus:      skillFocus,
		GoalType:        goalType,
		DifficultyLevel: difficultyLevel(goalType, mode, weekNumber, s.params),
		DurationMinutes: sessionDuration(preferredMinutes, mode, s.params),
		PacingMode:      mode,
		Content:         payload,
	}

	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("generated goal failed validation: %w", err)
	}

	return goal, nil
}

// GenerateRecoverySession implements the Service interface. Recovery goals
// sit outside the day sequence (day and week zero), always target a mixed
// focus at the difficulty floor, and scale duration with how many days
// were missed.
func (s *defaultService) GenerateRecoverySession(
	ctx context.Context,
	missedDays int,
	mode domain.PacingMode,
	perf *domain.UserPerformance,
) (*domain.AdaptiveGoal, error) {
	if perf == nil {
		return nil, ErrNilPerformance
	}
	if missedDays < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMissed, missedDays)
	}
	if !mode.IsValid() {
		mode = domain.PacingBalanced
	}

	duration := s.params.RecoveryLongMinutes
	description := "Condensed review session covering the most important concepts from your missed days."
	if missedDays <= s.params.RecoveryShortMaxMissed {
		duration = s.params.RecoveryShortMinutes
		description = "Quick catch-up covering the most important concepts from your missed days."
	}

	goal := &domain.AdaptiveGoal{
		DayNumber:       0,
		WeekNumber:      0,
		Title:           fmt.Sprintf("Recovery Session - %d Days Missed", missedDays),
		Description:     description,
		SkillFocus:      domain.SkillMixed,
		GoalType:        domain.GoalTypeRecovery,
		DifficultyLevel: s.params.MinDifficultyLevel,
		DurationMinutes: duration,
		PacingMode:      mode,
		Content: domain.GoalContent{
			Lesson: domain.Lesson{
				Title:       "Getting Back on Track",
				Description: description,
				KeyPoints: []string{
					"Life happens - don't worry about missed days",
					"Focus on the most critical concepts",
					"Get back on track with confidence",
				},
			},
			Exercises: []domain.Exercise{
				{
					Kind:             "recovery_practice",
					Instructions:     "Complete these essential exercises to get back on track",
					TimeLimitMinutes: duration,
				},
			},
			Assessment: domain.MicroAssessment{
				Questions: []domain.AssessmentQuestion{
					{
						Prompt:  "How ready are you to continue your IELTS journey?",
						Type:    content.TypeMultipleChoice,
						Options: []string{"Very ready", "Somewhat ready", "Need more time", "Not sure"},
						Answer:  0,
					},
				},
				TimeLimitMinutes: s.params.RecoveryAssessmentMinutes,
			},
		},
	}

	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("generated recovery session failed validation: %w", err)
	}

	return goal, nil
}

// sourceQuestions fetches questions for a goal, degrading to an empty set
// when the bank cannot serve the request. Goal generation never fails on
// missing content.
func (s *defaultService) sourceQuestions(ctx context.Context, req content.Request) []content.Question {
	questions, err := s.bank.Questions(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "question sourcing failed, composing degraded goal",
			slog.String("skill", string(req.Skill)),
			slog.String("difficulty", string(req.Difficulty)),
			slog.String("error", err.Error()))
		return nil
	}
	return questions
}
