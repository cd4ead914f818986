package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type stage int

const (
	stageBanner stage = iota
	stageEditing
)

// Theme selects the colour palette.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
	// ThemeAuto is resolved against the terminal background by the caller.
	ThemeAuto
)

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	case ThemeAuto:
		return "auto"
	default:
		return fmt.Sprintf("Theme(%d)", int(t))
	}
}

// ParseTheme accepts "dark", "light", "auto" or an empty string (auto).
func ParseTheme(value string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return ThemeAuto, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeAuto, fmt.Errorf("tui: unknown theme %q", value)
	}
}

const heroLabel = "reveal"

const (
	minContentWidth   = 20
	horizontalPadding = 4
	editorCharLimit   = 240
	editorPlaceholder = "Title one, Title two, Title three"
)

type keyMap struct {
	Next    key.Binding
	Edit    key.Binding
	Theme   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next script"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit tagline"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Edit, k.Restart},
		{k.Theme, k.Help, k.Quit},
	}
}
