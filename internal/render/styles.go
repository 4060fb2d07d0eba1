package render

import (
	"github.com/DjordjeVuckovic/newsroom/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	neutralColor  = lipgloss.Color("#16a34a")
	moderateColor = lipgloss.Color("#f7a100")
	highColor     = lipgloss.Color("#dc2626")
	accentColor   = lipgloss.Color("#0369a1")
	exhaustedFg   = lipgloss.Color("#991b1b")
	exhaustedBg   = lipgloss.Color("#fee2e2")
	badgeBg       = lipgloss.Color("#e0f2fe")
	dimColor      = lipgloss.Color("#6b7280")
	borderColor   = lipgloss.Color("#d1d5db")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(exhaustedFg).
			Background(exhaustedBg).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			SetString("▶")

	UnselectedStyle = lipgloss.NewStyle().
			SetString(" ")

	PinStyle = lipgloss.NewStyle().
			Foreground(moderateColor).
			SetString("★")

	badgeStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Background(badgeBg).
			Padding(0, 1)

	exhaustedBadgeStyle = lipgloss.NewStyle().
				Foreground(exhaustedFg).
				Background(exhaustedBg).
				Padding(0, 1)
)

// BandColor is the display colour of a bias score.
func BandColor(score int) lipgloss.Color {
	switch domain.BandOf(score) {
	case domain.BandHigh:
		return highColor
	case domain.BandModerate:
		return moderateColor
	default:
		return neutralColor
	}
}

func ScoreStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(BandColor(score)).Bold(true)
}
