package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/reveal/internal/reveal"
	"github.com/csheth/reveal/internal/typewriter"
)

// Track is one animated line of the banner.
type Track struct {
	Script reveal.Script
	Config reveal.Config
}

// Config wires runtime options into the TUI program.
type Config struct {
	Headline Track
	Tagline  Track
	// Alternates are extra tagline scripts cycled with the next-script key.
	Alternates []reveal.Script
	// Theme must be ThemeDark or ThemeLight; resolve ThemeAuto before New.
	Theme Theme
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	editor := textinput.New()
	editor.Placeholder = editorPlaceholder
	editor.CharLimit = editorCharLimit
	editor.Width = 50

	scripts := append([]reveal.Script{config.Tagline.Script}, config.Alternates...)

	m := &model{
		config:   config,
		stage:    stageBanner,
		theme:    config.Theme,
		headline: typewriter.New(config.Headline.Script, config.Headline.Config),
		tagline:  typewriter.New(config.Tagline.Script, config.Tagline.Config),
		scripts:  scripts,
		edited:   -1,
		editor:   editor,
		help:     help.New(),
		keys:     newKeyMap(),
		layout:   newPageLayout(),
	}
	m.applyTheme()
	return m
}

type model struct {
	config Config
	stage  stage
	theme  Theme

	headline typewriter.Model
	tagline  typewriter.Model

	scripts   []reveal.Script
	scriptIdx int
	// edited is the rotation slot holding the user's script, or -1.
	edited int

	editor textinput.Model
	help   help.Model
	keys   keyMap
	layout pageLayout

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.headline.Init(), m.tagline.Init())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typewriter.TickMsg, typewriter.BlinkMsg:
		return m, m.updateTypewriters(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.help.Width = m.layout.contentWidth
		m.editor.Width = m.layout.contentWidth - 6
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.stage == stageEditing {
			return m, m.handleEditorKey(msg)
		}
		return m, m.handleKey(msg)
	}
	if m.stage == stageEditing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) updateTypewriters(msg tea.Msg) tea.Cmd {
	var headlineCmd, taglineCmd tea.Cmd
	m.headline, headlineCmd = m.headline.Update(msg)
	m.tagline, taglineCmd = m.tagline.Update(msg)
	return tea.Batch(headlineCmd, taglineCmd)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.actionNextScript()
	case key.Matches(msg, m.keys.Edit):
		return m.actionStartEditing()
	case key.Matches(msg, m.keys.Theme):
		m.actionToggleTheme()
		return nil
	case key.Matches(msg, m.keys.Restart):
		return m.actionRestart()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	return nil
}

func (m *model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopEditing()
		m.infoMessage = "Edit canceled."
		return nil
	case tea.KeyEnter:
		return m.actionApplyEditor()
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *model) actionNextScript() tea.Cmd {
	if len(m.scripts) < 2 {
		m.infoMessage = "No alternate scripts configured."
		return nil
	}
	m.scriptIdx = (m.scriptIdx + 1) % len(m.scripts)
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Script %d/%d", m.scriptIdx+1, len(m.scripts))
	return m.swapTagline(m.scripts[m.scriptIdx])
}

func (m *model) actionStartEditing() tea.Cmd {
	m.stage = stageEditing
	m.errorMessage = ""
	m.infoMessage = "Comma-separated titles. Enter to apply, Esc to cancel."
	m.editor.SetValue(strings.Join(m.tagline.Script().Lines(), ", "))
	m.editor.CursorEnd()
	m.editor.Focus()
	return textinput.Blink
}

func (m *model) actionApplyEditor() tea.Cmd {
	lines := parseScriptInput(m.editor.Value())
	if len(lines) == 0 {
		m.errorMessage = "Enter at least one title."
		return nil
	}
	m.stopEditing()
	script := reveal.NewScript(lines...)
	m.scriptIdx = m.storeEdited(script)
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Tagline updated with %d title(s).", len(lines))
	return m.swapTagline(script)
}

// storeEdited puts script into the rotation and returns its slot. A script
// already in the rotation is reused; otherwise the single edited slot is
// overwritten.
func (m *model) storeEdited(script reveal.Script) int {
	for i, existing := range m.scripts {
		if existing.Equal(script) {
			return i
		}
	}
	if m.edited >= 0 {
		m.scripts[m.edited] = script
		return m.edited
	}
	m.scripts = append(m.scripts, script)
	m.edited = len(m.scripts) - 1
	return m.edited
}

func (m *model) actionToggleTheme() {
	if m.theme == ThemeLight {
		m.theme = ThemeDark
	} else {
		m.theme = ThemeLight
	}
	m.applyTheme()
	m.infoMessage = fmt.Sprintf("Theme: %s", m.theme)
	log.Printf("[tui] theme switched to %s", m.theme)
}

func (m *model) actionRestart() tea.Cmd {
	var headlineCmd, taglineCmd tea.Cmd
	m.headline, headlineCmd = m.headline.Reset()
	m.tagline, taglineCmd = m.tagline.Reset()
	m.infoMessage = "Restarted."
	return tea.Batch(headlineCmd, taglineCmd)
}

func (m *model) swapTagline(script reveal.Script) tea.Cmd {
	var cmd tea.Cmd
	m.tagline, cmd = m.tagline.SetScript(script)
	log.Printf("[tui] tagline script swapped (entries=%d)", script.Len())
	return cmd
}

func (m *model) stopEditing() {
	m.stage = stageBanner
	m.editor.Blur()
	m.editor.SetValue("")
}

func (m *model) applyTheme() {
	p := paletteFor(m.theme)
	m.headline.Style = p.headline
	m.headline.CaretStyle = p.caret
	m.tagline.Style = p.tagline
	m.tagline.CaretStyle = p.caret
}

func parseScriptInput(value string) []string {
	parts := strings.Split(value, ",")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lines = append(lines, part)
	}
	return lines
}
