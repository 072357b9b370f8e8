package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/bank"
)

// Color palette. Quadrant colors follow the usual compass chart.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	AuthLeft  = lipgloss.Color("#EF4444") // Red
	AuthRight = lipgloss.Color("#3B82F6") // Blue
	LibLeft   = lipgloss.Color("#22C55E") // Green
	LibRight  = lipgloss.Color("#A855F7") // Purple
)

// QuadrantColor returns the chart color of a quadrant.
func QuadrantColor(q bank.Quadrant) color.Color {
	switch q {
	case bank.AuthLeft:
		return AuthLeft
	case bank.AuthRight:
		return AuthRight
	case bank.LibLeft:
		return LibLeft
	case bank.LibRight:
		return LibRight
	default:
		return TextDim
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
