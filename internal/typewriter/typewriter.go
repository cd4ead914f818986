// Package typewriter is a Bubble Tea component that renders a reveal.Script
// as a typewriter line with a blinking caret.
package typewriter

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/reveal/internal/reveal"
)

const defaultCaret = "▌"

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances one typewriter. Messages carrying another instance's ID
// or an outdated tag are dropped, so only one tick per instance is ever live.
type TickMsg struct {
	ID   int
	Time time.Time
	tag  int
}

// BlinkMsg toggles the caret of one typewriter.
type BlinkMsg struct {
	ID  int
	tag int
}

// Model holds one animated line.
type Model struct {
	Style      lipgloss.Style
	CaretStyle lipgloss.Style
	// Caret is the glyph drawn after the text.
	Caret string

	id       int
	cfg      reveal.Config
	state    reveal.State
	caret    reveal.Caret
	tag      int
	blinkTag int
	blinking bool
}

// New returns a typewriter for script. Call Init to start it.
func New(script reveal.Script, cfg reveal.Config) Model {
	cfg = cfg.Normalize()
	state := reveal.Start(script, cfg)
	return Model{
		Caret:    defaultCaret,
		id:       nextID(),
		cfg:      cfg,
		state:    state,
		caret:    reveal.NewCaret(cfg.CaretInterval),
		blinking: state.Phase != reveal.Idle,
	}
}

// ID identifies this instance in TickMsg and BlinkMsg.
func (m Model) ID() int {
	return m.id
}

// Init schedules the first step and the first caret blink.
func (m Model) Init() tea.Cmd {
	if !m.blinking {
		return m.tick()
	}
	return tea.Batch(m.tick(), m.blink())
}

// Update handles this instance's ticks and ignores everything else.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || msg.tag != m.tag {
			return m, nil
		}
		m.state = reveal.Advance(m.state, reveal.Tick{}, m.cfg)
		m.tag++
		return m, m.tick()
	case BlinkMsg:
		if msg.ID != m.id || msg.tag != m.blinkTag {
			return m, nil
		}
		m.blinkTag++
		if m.state.Phase == reveal.Idle {
			m.blinking = false
			return m, nil
		}
		m.caret = m.caret.Toggle()
		return m, m.blink()
	}
	return m, nil
}

// SetScript swaps the script using the configured policy. Any tick already in
// flight becomes stale.
func (m Model) SetScript(script reveal.Script) (Model, tea.Cmd) {
	m.state = reveal.Advance(m.state, reveal.Swap{Script: script}, m.cfg)
	return m.reschedule()
}

// Reset starts the current script again from its first entry.
func (m Model) Reset() (Model, tea.Cmd) {
	m.state = reveal.Start(m.state.Script, m.cfg)
	return m.reschedule()
}

func (m Model) reschedule() (Model, tea.Cmd) {
	m.tag++
	cmds := []tea.Cmd{m.tick()}
	if !m.blinking && m.state.Phase != reveal.Idle {
		m.blinking = true
		m.blinkTag++
		m.caret.Visible = true
		cmds = append(cmds, m.blink())
	}
	return m, tea.Batch(cmds...)
}

// View renders the visible text followed by the caret. A hidden caret is
// replaced by spaces so the line does not jitter.
func (m Model) View() string {
	if m.state.Phase == reveal.Idle {
		return ""
	}
	caret := strings.Repeat(" ", lipgloss.Width(m.Caret))
	if m.caret.Visible {
		caret = m.CaretStyle.Render(m.Caret)
	}
	return m.Style.Render(m.state.Text()) + caret
}

// Text is the visible portion of the current entry.
func (m Model) Text() string {
	return m.state.Text()
}

// Phase reports the machine phase.
func (m Model) Phase() reveal.Phase {
	return m.state.Phase
}

// State exposes the full machine state.
func (m Model) State() reveal.State {
	return m.state
}

// Script returns the script being animated.
func (m Model) Script() reveal.Script {
	return m.state.Script
}

// CaretVisible reports whether the caret is drawn right now.
func (m Model) CaretVisible() bool {
	return m.caret.Visible && m.state.Phase != reveal.Idle
}

// Done reports whether a non-repeating script has finished.
func (m Model) Done() bool {
	return m.state.Phase == reveal.Done
}

// Tick returns the message the pending step timer would deliver. It lets
// callers drive the animation without waiting on real timers.
func (m Model) Tick() tea.Msg {
	return TickMsg{ID: m.id, Time: time.Now(), tag: m.tag}
}

// Blink returns the message the pending caret timer would deliver.
func (m Model) Blink() tea.Msg {
	return BlinkMsg{ID: m.id, tag: m.blinkTag}
}

func (m Model) tick() tea.Cmd {
	d, ok := reveal.Delay(m.state, m.cfg)
	if !ok {
		return nil
	}
	id, tag := m.id, m.tag
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t, tag: tag}
	})
}

func (m Model) blink() tea.Cmd {
	id, tag := m.id, m.blinkTag
	return tea.Tick(m.caret.Interval, func(time.Time) tea.Msg {
		return BlinkMsg{ID: id, tag: tag}
	})
}
