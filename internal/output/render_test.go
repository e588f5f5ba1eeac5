package output

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
}

func TestMoodBar(t *testing.T) {
	plain(t)
	assert.Equal(t, "●●●○○ Neutral", MoodBar(3))
	assert.Equal(t, "●●●●● Great", MoodBar(wellness.MoodMax))
	assert.Equal(t, "○○○○○ Unknown", MoodBar(0))
}

func TestXPBar(t *testing.T) {
	plain(t)
	assert.Equal(t, "█████░░░░░ 50/100 XP", XPBar(150, 100, 10))
	assert.Equal(t, "░░░░░░░░░░ 0/100 XP", XPBar(200, 100, 10))
	assert.Contains(t, XPBar(10, 0, 0), "10/100 XP")
}

func TestUsageBand(t *testing.T) {
	plain(t)
	assert.Equal(t, "1.5h (healthy)", UsageBand(1.5))
	assert.Equal(t, "4.0h (moderate)", UsageBand(4))
	assert.Equal(t, "9.0h (high)", UsageBand(9))
}

func TestCorrelationArrow(t *testing.T) {
	plain(t)
	assert.Equal(t, "▼ -0.45", CorrelationArrow(-0.45))
	assert.Equal(t, "▲ +0.30", CorrelationArrow(0.3))
	assert.Equal(t, "─ 0.00", CorrelationArrow(0))
}

func TestSuggestionCard(t *testing.T) {
	plain(t)
	out := SuggestionCard(suggest.Suggestion{
		Title:     "Nature Walk",
		Text:      "Step outside for twenty minutes without your phone and notice five things you can hear.",
		Rationale: "mood 3 with 3.5h of screen time",
	}, 40)
	assert.Contains(t, out, "Nature Walk")
	assert.Contains(t, out, "why: mood 3")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, visualLen(line), 40)
	}
}

func TestInsightCard(t *testing.T) {
	plain(t)
	out := InsightCard(suggest.Insight{
		Kind:        suggest.InsightNegativeCorrelation,
		Label:       "Pattern spotted",
		Message:     "Heavier screen days line up with lower moods.",
		Correlation: -0.62,
		Points:      7,
	}, 60)
	assert.Contains(t, out, "Pattern spotted")
	assert.Contains(t, out, "over 7 days")
}

func TestBadgeChips(t *testing.T) {
	plain(t)
	assert.Equal(t, "no badges yet", BadgeChips(nil))
	assert.Equal(t, "Bronze Mindful Badge Silver Balance Badge", BadgeChips(session.BadgesFor(5)))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 11))
	assert.Equal(t, "short", wrap("short", 5))
}
