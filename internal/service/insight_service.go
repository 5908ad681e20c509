package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/domain/band"
	"github.com/phrazzld/pace-api/internal/domain/momentum"
	"github.com/phrazzld/pace-api/internal/store"
)

// dashboardSample bounds how many completed goals feed the dashboard's
// score trends and study-time aggregates.
const dashboardSample = 100

// SkillInsight is one skill's row on the progress dashboard.
type SkillInsight struct {
	Skill        domain.Skill `json:"skill"`
	Level        int          `json:"level"`
	Band         float64      `json:"band"`
	Trend        band.Trend   `json:"trend"`
	FocusArea    bool         `json:"focus_area"`
	RecentScores []int        `json:"recent_scores"`
}

// focusAreaThreshold marks a skill as needing attention on the dashboard.
const focusAreaThreshold = 60

// EngagementMetrics summarizes study habits over the dashboard sample.
type EngagementMetrics struct {
	WeeklyConsistency     float64 `json:"weekly_consistency"`
	AverageSessionMinutes float64 `json:"average_session_minutes"`
	StreakDays            int     `json:"streak_days"`
	TotalStudyHours       float64 `json:"total_study_hours"`
	GoalsCompleted        int     `json:"goals_completed"`
	ImprovementRate       float64 `json:"improvement_rate"`
}

// Dashboard is the full progress view: per-skill standing, the band
// projection against the learner's target, engagement metrics, and
// attendance-driven recovery messaging.
type Dashboard struct {
	Skills     []SkillInsight        `json:"skills"`
	Projection domain.BandProjection `json:"projection"`
	Timeline   string                `json:"timeline"`
	Engagement EngagementMetrics     `json:"engagement"`
	Momentum   momentum.Report       `json:"momentum"`
	Message    *momentum.Message     `json:"message,omitempty"`
}

// InsightService provides read-only progress and engagement views.
type InsightService interface {
	// GetDashboard assembles the user's progress dashboard.
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

// InsightServiceImpl implements the InsightService interface.
type InsightServiceImpl struct {
	goalStore     store.GoalStore
	profileStore  store.ProfileStore
	progressStore store.ProgressStore
	streakStore   store.StreakStore
	logger        *slog.Logger
	timeFunc      func() time.Time // Injectable for testing
}

// Compile-time check that InsightServiceImpl implements InsightService
var _ InsightService = (*InsightServiceImpl)(nil)

// NewInsightService creates a new InsightService.
func NewInsightService(
	goalStore store.GoalStore,
	profileStore store.ProfileStore,
	progressStore store.ProgressStore,
	streakStore store.StreakStore,
	logger *slog.Logger,
) *InsightServiceImpl {
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
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &InsightServiceImpl{
		goalStore:     goalStore,
		profileStore:  profileStore,
		progressStore: progressStore,
		streakStore:   streakStore,
		logger:        logger.With(slog.String("component", "insight_service")),
		timeFunc:      time.Now,
	}
}

// GetDashboard assembles the user's progress dashboard from the profile,
// progress, streak, and completion history. Missing progress or streak
// rows render as baselines rather than errors so a brand-new account
// still gets a dashboard.
func (s *InsightServiceImpl) GetDashboard(
	ctx context.Context,
	userID uuid.UUID,
) (*Dashboard, error) {
	now := s.timeFunc()

	profile, err := s.profileStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, ErrProfileIncomplete
		}
		s.logger.Error("failed to load profile for dashboard",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			s.logger.Error("failed to load progress for dashboard",
				"error", err,
				"user_id", userID)
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}
		progress, err = domain.NewProgress(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to build baseline progress: %w", err)
		}
	}

	completed, err := s.goalStore.ListCompleted(ctx, userID, dashboardSample)
	if err != nil {
		s.logger.Error("failed to load completions for dashboard",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load completions: %w", err)
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

	streakDays := 0
	streak, err := s.streakStore.Get(ctx, userID)
	if err == nil {
		streakDays = streak.Current
	} else if !errors.Is(err, store.ErrStreakNotFound) {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	allScores := scoresOf(completed)

	dashboard := &Dashboard{
		Skills:     skillInsights(progress, completed),
		Projection: band.Project(progress.Levels, profile.TargetBand, allScores, totalCompleted),
		Timeline:   timelineOf(profile.ExamDate, now),
		Engagement: EngagementMetrics{
			WeeklyConsistency:     weeklyConsistency(dates, now),
			AverageSessionMinutes: averageSessionMinutes(completed),
			StreakDays:            streakDays,
			TotalStudyHours:       totalStudyHours(completed),
			GoalsCompleted:        totalCompleted,
			ImprovementRate:       band.ImprovementRate(allScores),
		},
		Momentum: report,
	}

	if report.MissedDays > 0 {
		msg := momentum.MessageFor(report.MissedDays)
		dashboard.Message = &msg
	}

	s.logger.Debug("assembled dashboard",
		"user_id", userID,
		"goals_completed", totalCompleted,
		"missed_days", report.MissedDays)

	return dashboard, nil
}

// skillInsights builds the per-skill dashboard rows. Completions arrive
// most recent first, which is the order the trend comparison expects.
func skillInsights(progress *domain.Progress, completed []*domain.DailyGoalRecord) []SkillInsight {
	scored := domain.ScoredSkills()
	insights := make([]SkillInsight, 0, len(scored))

	for _, skill := range scored {
		var scores []int
		for _, record := range completed {
			if record.Goal.SkillFocus != skill || record.Score == nil {
				continue
			}
			scores = append(scores, *record.Score)
		}

		recent := scores
		if len(recent) > 5 {
			recent = recent[:5]
		}

		level := progress.Level(skill)
		insights = append(insights, SkillInsight{
			Skill:        skill,
			Level:        level,
			Band:         band.SkillBand(level),
			Trend:        band.TrendOf(scores),
			FocusArea:    level < focusAreaThreshold,
			RecentScores: recent,
		})
	}

	return insights
}

// scoresOf extracts completion scores in the order given, skipping
// records without one.
func scoresOf(completed []*domain.DailyGoalRecord) []int {
	scores := make([]int, 0, len(completed))
	for _, record := range completed {
		if record.Score == nil {
			continue
		}
		scores = append(scores, *record.Score)
	}
	return scores
}

// weeklyConsistency is the share of the last seven days with at least one
// completion, as a percentage.
func weeklyConsistency(completionDates []time.Time, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -7)

	days := make(map[time.Time]bool)
	for _, d := range completionDates {
		if d.Before(cutoff) {
			continue
		}
		days[domain.DateOf(d)] = true
	}

	return float64(len(days)) / 7.0 * 100.0
}

func averageSessionMinutes(completed []*domain.DailyGoalRecord) float64 {
	if len(completed) == 0 {
		return 0
	}

	var minutes int
	for _, record := range completed {
		if record.TimeSpentMinutes != nil {
			minutes += *record.TimeSpentMinutes
		}
	}

	return float64(minutes) / float64(len(completed))
}

func totalStudyHours(completed []*domain.DailyGoalRecord) float64 {
	var minutes int
	for _, record := range completed {
		if record.TimeSpentMinutes != nil {
			minutes += *record.TimeSpentMinutes
		}
	}

	return float64(minutes) / 60.0
}

// timelineOf renders the time remaining before the exam in the unit that
// reads most naturally for the distance: days inside a month, then weeks,
// then months.
func timelineOf(examDate *time.Time, now time.Time) string {
	if examDate == nil {
		return "Unknown"
	}

	daysUntil := int(math.Ceil(examDate.Sub(now).Hours() / 24))

	switch {
	case daysUntil <= 30:
		return fmt.Sprintf("%d days (INTENSIVE)", daysUntil)
	case daysUntil <= 90:
		return fmt.Sprintf("%d weeks (BALANCED)", (daysUntil+6)/7)
	default:
		return fmt.Sprintf("%d months (STEADY BUILD)", (daysUntil+29)/30)
	}
}
