package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/charmbracelet/lipgloss"
)

// SuggestionCard renders the day's recommendation in a bordered box.
func SuggestionCard(s suggest.Suggestion, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render(s.Title),
		wrap(s.Text, width-4),
		"",
		StyleMuted.Render(wrap("why: "+s.Rationale, width-4)),
	)
	return StyleCard.Render(body)
}

// InsightCard renders the correlation insight.
func InsightCard(in suggest.Insight, width int) string {
	label := StyleCalm
	if in.Kind == suggest.InsightNegativeCorrelation {
		label = StyleWarning
	}
	stats := StyleMuted.Render(fmt.Sprintf("r = %s over %d days", CorrelationArrow(in.Correlation), in.Points))
	body := lipgloss.JoinVertical(lipgloss.Left,
		label.Bold(true).Render(in.Label),
		wrap(in.Message, width-4),
		stats,
	)
	return StyleCard.Render(body)
}

// BadgeChips renders earned badges side by side. An empty slice renders a
// muted placeholder.
func BadgeChips(badges []session.Badge) string {
	if len(badges) == 0 {
		return StyleMuted.Render("no badges yet")
	}
	chips := make([]string, 0, len(badges))
	for _, b := range badges {
		chips = append(chips, badgeStyle(b.Tier).Render(b.Name))
	}
	return strings.Join(chips, " ")
}

func badgeStyle(tier session.BadgeTier) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	c := ColorBronze
	switch tier {
	case session.TierSilver:
		c = ColorSilver
	case session.TierGold:
		c = ColorGold
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e1e")).Background(c).Padding(0, 1)
}

// wrap breaks text into lines no wider than width on word boundaries.
func wrap(text string, width int) string {
	if width <= 10 {
		return text
	}
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
