// Package momentum derives attendance analytics from goal completion
// history: consecutive missed days, comeback streaks, and the recovery
// messaging shown when a learner returns after a gap.
package momentum

import (
	"time"

	"github.com/phrazzld/pace-api/internal/domain"
)

// LookbackDays bounds how far back attendance analysis reaches.
const LookbackDays = 30

// RecoveryPromptThreshold is the consecutive missed-day count at which a
// recovery session is offered instead of a gentle nudge.
const RecoveryPromptThreshold = 3

// Report summarizes a learner's recent attendance.
//
// MissedDays counts consecutive days without a completion ending today and
// drives recovery behavior. TotalMissedDays counts every missed day in the
// lookback window regardless of gaps and is display-only. The two answer
// different questions and are intentionally both kept.
type Report struct {
	MissedDays       int `json:"missed_days"`
	TotalMissedDays  int `json:"total_missed_days"`
	ComebackStreak   int `json:"comeback_streak"`
	RecoverySessions int `json:"recovery_sessions"`
}

// NeedsRecovery reports whether the gap is long enough to offer a
// recovery session.
func (r *Report) NeedsRecovery() bool {
	return r.MissedDays >= RecoveryPromptThreshold
}

// Analyze builds an attendance report from the completion dates in the
// lookback window. Dates may carry time components and arrive in any
// order; they are normalized to UTC days internally.
func Analyze(completionDates []time.Time, now time.Time) Report {
	days := toDaySet(completionDates)
	today := domain.DateOf(now)

	report := Report{
		ComebackStreak: comebackStreak(days, today),
	}

	consecutive := true
	for i := 0; i < LookbackDays; i++ {
		day := today.AddDate(0, 0, -i)
		if days[day] {
			consecutive = false
			continue
		}
		report.TotalMissedDays++
		if consecutive {
			report.MissedDays++
		}
	}

	if report.TotalMissedDays > 0 {
		report.RecoverySessions = (report.TotalMissedDays + 2) / 3
	}

	return report
}

// comebackStreak counts consecutive study days ending at the most recent
// completion. A single completion is a streak of one; the streak breaks at
// the first gap longer than a day.
func comebackStreak(days map[time.Time]bool, today time.Time) int {
	// Find the most recent completion within the window.
	var latest time.Time
	found := false
	for i := 0; i < LookbackDays; i++ {
		day := today.AddDate(0, 0, -i)
		if days[day] {
			latest = day
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	streak := 1
	for days[latest.AddDate(0, 0, -streak)] {
		streak++
	}
	return streak
}

func toDaySet(dates []time.Time) map[time.Time]bool {
	days := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		days[domain.DateOf(d)] = true
	}
	return days
}
