package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// MoodBar renders a five-cell bar for a mood rating.
// Example: "●●●○○ Neutral"
func MoodBar(m wellness.Mood) string {
	filled := max(0, min(int(wellness.MoodMax), int(m)))
	bar := strings.Repeat("●", filled) + strings.Repeat("○", int(wellness.MoodMax)-filled)

	style := StyleSuccess
	switch {
	case m <= 2:
		style = StyleError
	case m == 3:
		style = StyleWarning
	}
	return fmt.Sprintf("%s %s", style.Render(bar), StyleMuted.Render(m.Label()))
}

// XPBar renders progress through the current level.
// Example: "██████░░░░ 60/100 XP"
func XPBar(xp, perLevel, width int) string {
	if width <= 0 {
		width = 20
	}
	if perLevel <= 0 {
		perLevel = 100
	}
	into := xp % perLevel
	filled := min(width, into*width/perLevel)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", StyleCalm.Render(bar), StyleMuted.Render(fmt.Sprintf("%d/%d XP", into, perLevel)))
}

// UsageBand renders screen time with its health band.
func UsageBand(hours float64) string {
	band := wellness.ClassifyUsage(hours)
	text := fmt.Sprintf("%.1fh (%s)", hours, band)
	switch band {
	case wellness.UsageHealthy:
		return StyleSuccess.Render(text)
	case wellness.UsageModerate:
		return StyleWarning.Render(text)
	default:
		return StyleError.Render(text)
	}
}

// CorrelationArrow renders a signed correlation coefficient.
func CorrelationArrow(r float64) string {
	switch {
	case r < 0:
		return StyleError.Render(fmt.Sprintf("▼ %.2f", r))
	case r > 0:
		return StyleSuccess.Render(fmt.Sprintf("▲ +%.2f", r))
	default:
		return StyleMuted.Render("─ 0.00")
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 48))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// KV renders one aligned label/value line.
func KV(label, value string) string {
	return fmt.Sprintf(" %s %s", StyleLabel.Render(label), value)
}
