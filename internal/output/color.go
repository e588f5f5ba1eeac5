// Package output provides styled terminal rendering helpers for mindpatch.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette used across the CLI.
var (
	ColorPrimary = lipgloss.Color("#7e57c2")
	ColorCalm    = lipgloss.Color("#4db6ac")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorError   = lipgloss.Color("#ef5350")
	ColorWarning = lipgloss.Color("#ffca28")
	ColorMuted   = lipgloss.Color("#888888")
	ColorGold    = lipgloss.Color("#ffd54f")
	ColorSilver  = lipgloss.Color("#cfd8dc")
	ColorBronze  = lipgloss.Color("#d7a17a")
)

// Reusable styles. SetNoColor swaps them for plain renderers.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style
	StyleCalm    lipgloss.Style
	StyleLabel   lipgloss.Style
	StyleValue   lipgloss.Style
	StyleCard    lipgloss.Style
)

var noColor bool

func init() {
	applyStyles(false)
}

func applyStyles(plain bool) {
	if plain {
		p := lipgloss.NewStyle()
		StyleHeader = p
		StyleSuccess = p
		StyleError = p
		StyleWarning = p
		StyleMuted = p
		StyleBold = p
		StyleCalm = p
		StyleLabel = p.Width(18)
		StyleValue = p.Width(12)
		StyleCard = p.PaddingLeft(2)
		return
	}
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleCalm = lipgloss.NewStyle().Foreground(ColorCalm)
	StyleLabel = lipgloss.NewStyle().Foreground(ColorMuted).Width(18)
	StyleValue = lipgloss.NewStyle().Bold(true).Width(12)
	StyleCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorCalm).
		Padding(0, 1)
}

// SetNoColor disables or re-enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// ColorEnabled reports whether styled output should be written to f. It
// honors the configured preference, the NO_COLOR convention and whether f
// is a terminal.
func ColorEnabled(f *os.File, preferred bool) bool {
	if !preferred {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
