package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles of the menus and the stats screen.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	WorldHeader lipgloss.Style

	ItemNormal lipgloss.Style
	ItemActive lipgloss.Style
	ItemLocked lipgloss.Style

	StarFilled lipgloss.Style
	StarEmpty  lipgloss.Style
	BestTime   lipgloss.Style

	Panel  lipgloss.Style
	Help   lipgloss.Style
	Status lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		WorldHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),

		ItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemLocked: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		StarFilled: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StarEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		BestTime:   lipgloss.NewStyle().Foreground(lipgloss.Color("87")),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Title = lipgloss.NewStyle().Bold(true)
	t.WorldHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	t.ItemActive = lipgloss.NewStyle().Reverse(true)
	t.StarFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	t.BestTime = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return t
}

// stars renders a three-star rating.
func (t Theme) stars(n int) string {
	n = max(0, min(n, 3))
	s := ""
	for i := range 3 {
		if i < n {
			s += t.StarFilled.Render("★")
		} else {
			s += t.StarEmpty.Render("☆")
		}
	}
	return s
}
