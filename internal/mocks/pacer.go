package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/domain/pacing"
)

// MockPacingService implements pacing.Service for testing
type MockPacingService struct {
	// Function fields for customizable behavior
	GenerateDailyGoalFn       func(ctx context.Context, dayNumber int, examDate time.Time, perf *domain.UserPerformance, preferredMinutes int, now time.Time) (*domain.AdaptiveGoal, error)
	GenerateRecoverySessionFn func(ctx context.Context, missedDays int, mode domain.PacingMode, perf *domain.UserPerformance) (*domain.AdaptiveGoal, error)
	ModeFn                    func(examDate, now time.Time) domain.PacingMode

	// Default values used when functions aren't explicitly defined
	Goal        *domain.AdaptiveGoal
	Recovery    *domain.AdaptiveGoal
	GoalErr     error
	RecoveryErr error
	PacingMode  domain.PacingMode
}

// Compile-time check that MockPacingService implements pacing.Service
var _ pacing.Service = (*MockPacingService)(nil)

// GenerateDailyGoal implements the pacing.Service interface
func (m *MockPacingService) GenerateDailyGoal(
	ctx context.Context,
	dayNumber int,
	examDate time.Time,
	perf *domain.UserPerformance,
	preferredMinutes int,
	now time.Time,
) (*domain.AdaptiveGoal, error) {
	if m.GenerateDailyGoalFn != nil {
		return m.GenerateDailyGoalFn(ctx, dayNumber, examDate, perf, preferredMinutes, now)
	}
	return m.Goal, m.GoalErr
}

// GenerateRecoverySession implements the pacing.Service interface
func (m *MockPacingService) GenerateRecoverySession(
	ctx context.Context,
	missedDays int,
	mode domain.PacingMode,
	perf *domain.UserPerformance,
) (*domain.AdaptiveGoal, error) {
	if m.GenerateRecoverySessionFn != nil {
		return m.GenerateRecoverySessionFn(ctx, missedDays, mode, perf)
	}
	return m.Recovery, m.RecoveryErr
}

// Mode implements the pacing.Service interface
func (m *MockPacingService) Mode(examDate, now time.Time) domain.PacingMode {
	if m.ModeFn != nil {
		return m.ModeFn(examDate, now)
	}
	if m.PacingMode != "" {
		return m.PacingMode
	}
	return domain.PacingBalanced
}
