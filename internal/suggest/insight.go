package suggest

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// InsightKind identifies which summary message was chosen.
type InsightKind string

const (
	InsightNegativeCorrelation InsightKind = "negative_correlation"
	InsightWinningStreak       InsightKind = "winning_streak"
	InsightNeutralPhase        InsightKind = "neutral_phase"
)

// Insight is the summary-view message derived from recent history.
type Insight struct {
	Kind        InsightKind `json:"kind"`
	Label       string      `json:"label"`
	Message     string      `json:"message"`
	Correlation float64     `json:"correlation"`
	Points      int         `json:"points"`
}

// Pearson returns the correlation coefficient of xs and ys over their common
// length. Fewer than two points, or zero variance on either side, yields 0.
func Pearson(xs, ys []float64) float64 {
	n := min(len(xs), len(ys))
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}

	r := cov / math.Sqrt(varX*varY)
	// Clamp floating-point drift.
	return math.Max(-1, math.Min(1, r))
}

// MoodScreenCorrelation computes the Pearson correlation between mood and
// screen time over the last window entries of a chronological history.
// It also returns the number of points used.
func MoodScreenCorrelation(history []wellness.DailyEntry, window int) (float64, int) {
	recent := lastN(history, window)
	moods := make([]float64, len(recent))
	hours := make([]float64, len(recent))
	for i, e := range recent {
		moods[i] = float64(e.Mood)
		hours[i] = e.ScreenTimeHours()
	}
	return Pearson(moods, hours), len(recent)
}

// BuildInsight picks the summary insight for a chronological history.
func BuildInsight(history []wellness.DailyEntry, t *Thresholds) Insight {
	corr, points := MoodScreenCorrelation(history, t.HistoryWindow)

	var lastMood wellness.Mood
	if len(history) > 0 {
		lastMood = history[len(history)-1].Mood
	}

	switch {
	case corr < t.NegativeCorrelation:
		return Insight{
			Kind:  InsightNegativeCorrelation,
			Label: "Screens are weighing on you",
			Message: fmt.Sprintf(
				"Across your last %d entries your mood drops as screen time rises (r = %.2f). "+
					"Cutting an hour on heavy days is likely to help.",
				points, corr,
			),
			Correlation: corr,
			Points:      points,
		}
	case lastMood >= t.WinningMood:
		return Insight{
			Kind:        InsightWinningStreak,
			Label:       "You're on a winning streak",
			Message:     fmt.Sprintf("Your latest mood is %s. Keep the habits that got you here.", lastMood.Label()),
			Correlation: corr,
			Points:      points,
		}
	default:
		return Insight{
			Kind:        InsightNeutralPhase,
			Label:       "Neutral phase",
			Message:     "No strong pattern yet. Keep logging to see how screen time shapes your mood.",
			Correlation: corr,
			Points:      points,
		}
	}
}

func lastN(entries []wellness.DailyEntry, n int) []wellness.DailyEntry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
