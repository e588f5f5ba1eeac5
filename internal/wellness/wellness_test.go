package wellness

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodLabel(t *testing.T) {
	assert.Equal(t, "Very Low", Mood(1).Label())
	assert.Equal(t, "Neutral", Mood(3).Label())
	assert.Equal(t, "Great", Mood(5).Label())
	assert.Equal(t, "Unknown", Mood(0).Label())
	assert.Equal(t, "Unknown", Mood(6).Label())
}

func TestBreakdown_TotalAndRatio(t *testing.T) {
	b := Breakdown{Study: 2, Social: 4.5, Entertainment: 0.5}
	assert.InDelta(t, 7.0, b.Total(), 1e-9)
	assert.InDelta(t, 4.5/7.0, b.SocialRatio(), 1e-9)

	var empty Breakdown
	assert.Zero(t, empty.SocialRatio())
}

func TestDailyEntry_ScreenTimeHoursPrefersBreakdown(t *testing.T) {
	e := DailyEntry{Date: "2026-10-16", Mood: 3, ScreenTime: 1, Breakdown: &Breakdown{Study: 3, Social: 1}}
	assert.InDelta(t, 4.0, e.ScreenTimeHours(), 1e-9)

	flat := DailyEntry{Date: "2026-10-16", Mood: 3, ScreenTime: 2.5}
	assert.InDelta(t, 2.5, flat.ScreenTimeHours(), 1e-9)
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   DailyEntry
		wantErr error
	}{
		{"valid", DailyEntry{Date: "2026-10-16", Mood: 3, ScreenTime: 4}, nil},
		{"zero hours", DailyEntry{Date: "2026-10-16", Mood: 1, ScreenTime: 0}, nil},
		{"mood low", DailyEntry{Date: "2026-10-16", Mood: 0, ScreenTime: 1}, ErrMoodOutOfRange},
		{"mood high", DailyEntry{Date: "2026-10-16", Mood: 6, ScreenTime: 1}, ErrMoodOutOfRange},
		{"negative hours", DailyEntry{Date: "2026-10-16", Mood: 3, ScreenTime: -0.5}, ErrNegativeScreenTime},
		{"too many hours", DailyEntry{Date: "2026-10-16", Mood: 3, ScreenTime: 25}, ErrScreenTimeExceedsDay},
		{"nan hours", DailyEntry{Date: "2026-10-16", Mood: 3, ScreenTime: math.NaN()}, ErrInvalidHours},
		{"bad date", DailyEntry{Date: "16/10/2026", Mood: 3, ScreenTime: 1}, ErrInvalidDate},
		{"negative category", DailyEntry{Date: "2026-10-16", Mood: 3, Breakdown: &Breakdown{Social: -1}}, ErrNegativeCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(&tt.entry)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateEntry_BreakdownReplacesTotal(t *testing.T) {
	e := DailyEntry{Date: "2026-10-16", Mood: 2, ScreenTime: 1, Breakdown: &Breakdown{Study: 5, Social: 2}}
	require.NoError(t, ValidateEntry(&e))
	assert.InDelta(t, 7.0, e.ScreenTime, 1e-9)
}

func TestClassifyUsage(t *testing.T) {
	assert.Equal(t, UsageHealthy, ClassifyUsage(0))
	assert.Equal(t, UsageHealthy, ClassifyUsage(2))
	assert.Equal(t, UsageModerate, ClassifyUsage(2.5))
	assert.Equal(t, UsageModerate, ClassifyUsage(5))
	assert.Equal(t, UsageHigh, ClassifyUsage(5.5))
	assert.Equal(t, "High screen exposure", UsageHigh.Message())
}

func TestTodayAndPreviousDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01", Today(now, time.UTC))
	assert.Equal(t, "2026-02-28", PreviousDay("2026-03-01"))
	assert.Equal(t, "", PreviousDay("garbage"))
}
