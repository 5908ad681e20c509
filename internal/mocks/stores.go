package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pace-api/internal/domain"
	"github.com/phrazzld/pace-api/internal/store"
)

// MockGoalStore implements store.GoalStore for testing
type MockGoalStore struct {
	// Function fields for customizable behavior
	CreateFn                   func(ctx context.Context, record *domain.DailyGoalRecord) error
	GetByIDFn                  func(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error)
	GetForDateFn               func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyGoalRecord, error)
	GetForUpdateFn             func(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error)
	SaveCompletionFn           func(ctx context.Context, record *domain.DailyGoalRecord) error
	ListCompletedFn            func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.DailyGoalRecord, error)
	ListCompletionDatesSinceFn func(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)
	CountCompletedFn           func(ctx context.Context, userID uuid.UUID) (int, error)

	// Data for default implementation, keyed by record ID
	Records map[uuid.UUID]*domain.DailyGoalRecord
}

// NewMockGoalStore creates a new mock store with initialized defaults
func NewMockGoalStore() *MockGoalStore {
	return &MockGoalStore{
		Records: make(map[uuid.UUID]*domain.DailyGoalRecord),
	}
}

// Create implements the GoalStore interface
func (m *MockGoalStore) Create(ctx context.Context, record *domain.DailyGoalRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, record)
	}

	if !record.Goal.IsRecovery() {
		for _, existing := range m.Records {
			if existing.UserID == record.UserID &&
				existing.GoalDate.Equal(record.GoalDate) &&
				!existing.Goal.IsRecovery() {
				return store.ErrGoalExists
			}
		}
	}

	m.Records[record.ID] = record
	return nil
}

// GetByID implements the GoalStore interface
func (m *MockGoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	record, exists := m.Records[id]
	if !exists {
		return nil, store.ErrGoalNotFound
	}
	return record, nil
}

// GetForDate implements the GoalStore interface
func (m *MockGoalStore) GetForDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*domain.DailyGoalRecord, error) {
	if m.GetForDateFn != nil {
		return m.GetForDateFn(ctx, userID, date)
	}

	for _, record := range m.Records {
		if record.UserID == userID &&
			record.GoalDate.Equal(domain.DateOf(date)) &&
			!record.Goal.IsRecovery() {
			return record, nil
		}
	}
	return nil, store.ErrGoalNotFound
}

// GetForUpdate implements the GoalStore interface
func (m *MockGoalStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.DailyGoalRecord, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// SaveCompletion implements the GoalStore interface
func (m *MockGoalStore) SaveCompletion(ctx context.Context, record *domain.DailyGoalRecord) error {
	if m.SaveCompletionFn != nil {
		return m.SaveCompletionFn(ctx, record)
	}

	if _, exists := m.Records[record.ID]; !exists {
		return store.ErrGoalNotFound
	}
	m.Records[record.ID] = record
	return nil
}

// ListCompleted implements the GoalStore interface
func (m *MockGoalStore) ListCompleted(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.DailyGoalRecord, error) {
	if m.ListCompletedFn != nil {
		return m.ListCompletedFn(ctx, userID, limit)
	}

	var completed []*domain.DailyGoalRecord
	for _, record := range m.Records {
		if record.UserID == userID && record.Completed {
			completed = append(completed, record)
		}
		if len(completed) == limit {
			break
		}
	}
	return completed, nil
}

// ListCompletionDatesSince implements the GoalStore interface
func (m *MockGoalStore) ListCompletionDatesSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	if m.ListCompletionDatesSinceFn != nil {
		return m.ListCompletionDatesSinceFn(ctx, userID, since)
	}

	var dates []time.Time
	for _, record := range m.Records {
		if record.UserID == userID && record.Completed &&
			record.CompletedAt != nil && !record.CompletedAt.Before(since) {
			dates = append(dates, *record.CompletedAt)
		}
	}
	return dates, nil
}

// CountCompleted implements the GoalStore interface
func (m *MockGoalStore) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountCompletedFn != nil {
		return m.CountCompletedFn(ctx, userID)
	}

	count := 0
	for _, record := range m.Records {
		if record.UserID == userID && record.Completed && !record.Goal.IsRecovery() {
			count++
		}
	}
	return count, nil
}

// WithTx implements the GoalStore interface for transaction support
func (m *MockGoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	// For mock purposes, just return the same mock
	return m
}

// MockProfileStore implements store.ProfileStore for testing
type MockProfileStore struct {
	CreateFn func(ctx context.Context, profile *domain.Profile) error
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpdateFn func(ctx context.Context, userID uuid.UUID, update store.ProfileUpdate) (*domain.Profile, error)

	// Data for default implementation
	Profiles map[uuid.UUID]*domain.Profile
}

// NewMockProfileStore creates a new mock store with initialized defaults
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// Create implements the ProfileStore interface
func (m *MockProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}

	if _, exists := m.Profiles[profile.UserID]; exists {
		return store.ErrDuplicate
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

// Get implements the ProfileStore interface
func (m *MockProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}

	profile, exists := m.Profiles[userID]
	if !exists {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

// Update implements the ProfileStore interface
func (m *MockProfileStore) Update(
	ctx context.Context,
	userID uuid.UUID,
	update store.ProfileUpdate,
) (*domain.Profile, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, update)
	}

	profile, exists := m.Profiles[userID]
	if !exists {
		return nil, store.ErrProfileNotFound
	}

	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
	}
	if update.TargetBand != nil {
		profile.TargetBand = *update.TargetBand
	}
	if update.ExamDate != nil {
		if update.ExamDate.Valid {
			t := update.ExamDate.Time
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
	return profile, nil
}

// WithTx implements the ProfileStore interface for transaction support
func (m *MockProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	// For mock purposes, just return the same mock
	return m
}

// MockProgressStore implements store.ProgressStore for testing
type MockProgressStore struct {
	CreateFn         func(ctx context.Context, progress *domain.Progress) error
	GetFn            func(ctx context.Context, userID uuid.UUID) (*domain.Progress, error)
	SetLevelsFn      func(ctx context.Context, userID uuid.UUID, levels map[domain.Skill]int, estimatedBand float64) error
	BumpSkillLevelFn func(ctx context.Context, userID uuid.UUID, skill domain.Skill, level int, assessedAt time.Time) error

	// Data for default implementation
	Progresses map[uuid.UUID]*domain.Progress
}

// NewMockProgressStore creates a new mock store with initialized defaults
func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{
		Progresses: make(map[uuid.UUID]*domain.Progress),
	}
}

// Create implements the ProgressStore interface
func (m *MockProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, progress)
	}

	if _, exists := m.Progresses[progress.UserID]; exists {
		return store.ErrDuplicate
	}
	m.Progresses[progress.UserID] = progress
	return nil
}

// Get implements the ProgressStore interface
func (m *MockProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Progress, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}

	progress, exists := m.Progresses[userID]
	if !exists {
		return nil, store.ErrProgressNotFound
	}
	return progress, nil
}

// SetLevels implements the ProgressStore interface
func (m *MockProgressStore) SetLevels(
	ctx context.Context,
	userID uuid.UUID,
	levels map[domain.Skill]int,
	estimatedBand float64,
) error {
	if m.SetLevelsFn != nil {
		return m.SetLevelsFn(ctx, userID, levels, estimatedBand)
	}

	progress, exists := m.Progresses[userID]
	if !exists {
		return store.ErrProgressNotFound
	}
	for skill, level := range levels {
		progress.Levels[skill] = level
	}
	progress.EstimatedBand = estimatedBand
	return nil
}

// BumpSkillLevel implements the ProgressStore interface
func (m *MockProgressStore) BumpSkillLevel(
	ctx context.Context,
	userID uuid.UUID,
	skill domain.Skill,
	level int,
	assessedAt time.Time,
) error {
	if m.BumpSkillLevelFn != nil {
		return m.BumpSkillLevelFn(ctx, userID, skill, level, assessedAt)
	}

	progress, exists := m.Progresses[userID]
	if !exists {
		return store.ErrProgressNotFound
	}
	if level > 100 {
		level = 100
	}
	if level > progress.Levels[skill] {
		progress.Levels[skill] = level
	}
	progress.LastAssessmentAt = &assessedAt
	return nil
}

// WithTx implements the ProgressStore interface for transaction support
func (m *MockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	// For mock purposes, just return the same mock
	return m
}

// MockStreakStore implements store.StreakStore for testing
type MockStreakStore struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.StreakState, error)
	UpsertFn func(ctx context.Context, streak *domain.StreakState) error

	// Data for default implementation
	Streaks map[uuid.UUID]*domain.StreakState
}

// NewMockStreakStore creates a new mock store with initialized defaults
func NewMockStreakStore() *MockStreakStore {
	return &MockStreakStore{
		Streaks: make(map[uuid.UUID]*domain.StreakState),
	}
}

// Get implements the StreakStore interface
func (m *MockStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.StreakState, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}

	streak, exists := m.Streaks[userID]
	if !exists {
		return nil, store.ErrStreakNotFound
	}
	return streak, nil
}

// Upsert implements the StreakStore interface
func (m *MockStreakStore) Upsert(ctx context.Context, streak *domain.StreakState) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, streak)
	}

	m.Streaks[streak.UserID] = streak
	return nil
}

// WithTx implements the StreakStore interface for transaction support
func (m *MockStreakStore) WithTx(tx *sql.Tx) store.StreakStore {
	// For mock purposes, just return the same mock
	return m
}
