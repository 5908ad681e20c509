package band

// Trend describes the direction of a skill's recent scores.
type Trend string

// Possible trend values
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendThreshold is how far the recent average must move from the previous
// average before the trend leaves stable.
const trendThreshold = 5.0

// TrendOf compares the three most recent scores against the three before
// them. Fewer than two scores is always stable; a missing previous window
// compares against the recent average itself.
func TrendOf(scores []int) Trend {
	if len(scores) < 2 {
		return TrendStable
	}

	recent := scores
	if len(recent) > 3 {
		recent = recent[:3]
	}

	var previous []int
	if len(scores) > 3 {
		previous = scores[3:]
		if len(previous) > 3 {
			previous = previous[:3]
		}
	}

	recentAvg := mean(recent)
	previousAvg := recentAvg
	if len(previous) > 0 {
		previousAvg = mean(previous)
	}

	switch {
	case recentAvg > previousAvg+trendThreshold:
		return TrendUp
	case recentAvg < previousAvg-trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}
