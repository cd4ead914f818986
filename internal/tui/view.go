package tui

import (
	"strings"
)

func (m *model) View() string {
	p := paletteFor(m.theme)
	parts := []string{m.heroView(p)}
	if m.stage == stageEditing {
		parts = append(parts, m.editorView(p))
	}
	parts = append(parts, m.statusView(p), m.help.View(m.keys))
	return m.layout.pad(m.layout.center(joinNonEmpty(parts)))
}

func (m *model) heroView(p palette) string {
	lines := []string{p.label.Render(heroLabel)}
	if line := m.headline.View(); line != "" {
		lines = append(lines, m.layout.fit(line))
	}
	if line := m.tagline.View(); line != "" {
		lines = append(lines, m.layout.fit(line))
	}
	return p.box.Render(strings.Join(lines, "\n"))
}

func (m *model) editorView(p palette) string {
	return p.editor.Render(m.editor.View())
}

func (m *model) statusView(p palette) string {
	var parts []string
	if m.errorMessage != "" {
		parts = append(parts, p.err.Render(m.layout.wrap(m.errorMessage)))
	}
	if m.infoMessage != "" {
		parts = append(parts, p.helper.Render(m.layout.wrap(m.infoMessage)))
	}
	return strings.Join(parts, "\n")
}
