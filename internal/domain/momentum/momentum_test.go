package momentum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	daysAgo := func(n int) time.Time {
		return now.AddDate(0, 0, -n)
	}

	t.Run("no completions means the whole window is missed", func(t *testing.T) {
		t.Parallel()

		report := Analyze(nil, now)

		assert.Equal(t, LookbackDays, report.MissedDays)
		assert.Equal(t, LookbackDays, report.TotalMissedDays)
		assert.Equal(t, 0, report.ComebackStreak)
		assert.True(t, report.NeedsRecovery())
	})

	t.Run("completion today resets the consecutive count", func(t *testing.T) {
		t.Parallel()

		report := Analyze([]time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, now)

		assert.Equal(t, 0, report.MissedDays)
		assert.Equal(t, LookbackDays-3, report.TotalMissedDays)
		assert.Equal(t, 3, report.ComebackStreak)
		assert.False(t, report.NeedsRecovery())
	})

	t.Run("consecutive missed days counted from today", func(t *testing.T) {
		t.Parallel()

		report := Analyze([]time.Time{daysAgo(4), daysAgo(5)}, now)

		assert.Equal(t, 4, report.MissedDays)
		assert.Equal(t, LookbackDays-2, report.TotalMissedDays)
		assert.Equal(t, 2, report.ComebackStreak)
		assert.True(t, report.NeedsRecovery())
	})

	t.Run("gap in the middle only counts toward the total", func(t *testing.T) {
		t.Parallel()

		report := Analyze([]time.Time{daysAgo(0), daysAgo(3), daysAgo(4)}, now)

		assert.Equal(t, 0, report.MissedDays)
		assert.Equal(t, LookbackDays-3, report.TotalMissedDays)
		// Days one and two are missing, so the streak is just today.
		assert.Equal(t, 1, report.ComebackStreak)
	})

	t.Run("two missed days stay below the recovery threshold", func(t *testing.T) {
		t.Parallel()

		report := Analyze([]time.Time{daysAgo(2)}, now)

		assert.Equal(t, 2, report.MissedDays)
		assert.False(t, report.NeedsRecovery())
	})

	t.Run("timestamps with time components collapse to days", func(t *testing.T) {
		t.Parallel()

		morning := time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)
		evening := time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC)
		report := Analyze([]time.Time{morning, evening}, now)

		assert.Equal(t, 0, report.MissedDays)
		assert.Equal(t, 1, report.ComebackStreak)
	})

	t.Run("recovery sessions scale with total missed days", func(t *testing.T) {
		t.Parallel()

		// 27 of 30 window days missed.
		report := Analyze([]time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, now)
		assert.Equal(t, 9, report.RecoverySessions)
	})
}

func TestMessageFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		missedDays    int
		expectedTone  Tone
		expectedTitle string
	}{
		{name: "single day", missedDays: 1, expectedTone: ToneGentle, expectedTitle: "One day off? No worries!"},
		{name: "two days", missedDays: 2, expectedTone: ToneGentle, expectedTitle: "Two-day break happens!"},
		{name: "short gap", missedDays: 5, expectedTone: ToneSupportive, expectedTitle: "Welcome back! We missed you."},
		{name: "week boundary", missedDays: 7, expectedTone: ToneSupportive, expectedTitle: "Welcome back! We missed you."},
		{name: "long gap", missedDays: 14, expectedTone: ToneSupportive, expectedTitle: "Time for a fresh start!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := MessageFor(tt.missedDays)
			assert.Equal(t, tt.expectedTone, msg.Tone)
			assert.Equal(t, tt.expectedTitle, msg.Title)
			assert.NotEmpty(t, msg.Body)
		})
	}

	t.Run("longer gaps carry the day count", func(t *testing.T) {
		t.Parallel()

		msg := MessageFor(6)
		assert.Contains(t, msg.Body, "6 days")
	})
}
