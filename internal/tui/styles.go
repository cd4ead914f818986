package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	headline lipgloss.Style
	tagline  lipgloss.Style
	caret    lipgloss.Style
	label    lipgloss.Style
	box      lipgloss.Style
	helper   lipgloss.Style
	err      lipgloss.Style
	editor   lipgloss.Style
}

var (
	darkAccentColor  = lipgloss.Color("#ff8c00")
	darkTextColor    = lipgloss.Color("#fff4d0")
	darkSubtextColor = lipgloss.Color("#ffb347")

	lightAccentColor  = lipgloss.Color("#7f5af0")
	lightTextColor    = lipgloss.Color("#1b1b1f")
	lightSubtextColor = lipgloss.Color("#56526e")

	darkPalette = palette{
		headline: lipgloss.NewStyle().Bold(true).Foreground(darkTextColor),
		tagline:  lipgloss.NewStyle().Foreground(darkSubtextColor).Italic(true),
		caret:    lipgloss.NewStyle().Foreground(darkAccentColor),
		label:    lipgloss.NewStyle().Bold(true).Foreground(darkAccentColor),
		box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(darkAccentColor).Padding(1, 2),
		helper:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		editor:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1),
	}

	lightPalette = palette{
		headline: lipgloss.NewStyle().Bold(true).Foreground(lightTextColor),
		tagline:  lipgloss.NewStyle().Foreground(lightSubtextColor).Italic(true),
		caret:    lipgloss.NewStyle().Foreground(lightAccentColor),
		label:    lipgloss.NewStyle().Bold(true).Foreground(lightAccentColor),
		box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lightAccentColor).Padding(1, 2),
		helper:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		editor:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#bde0fe")).Padding(0, 1),
	}
)

func paletteFor(theme Theme) palette {
	if theme == ThemeLight {
		return lightPalette
	}
	return darkPalette
}
