// Package reveal implements the typewriter title effect: a script of strings
// is typed one grapheme at a time, held, erased, and followed by the next
// entry.
//
// The state machine is pure. Advance folds an Event into a State and Delay
// reports how long the caller should wait before the next Tick, so the
// animation can be stepped without real timers. Animator and the typewriter
// Bubble Tea component are the two schedulers built on top of it.
package reveal

import (
	"fmt"
	"time"
)

// Phase is the sub-state of a running animation.
type Phase int

const (
	// Idle means the script is empty; nothing is shown or scheduled.
	Idle Phase = iota
	Typing
	PausedAfterType
	Deleting
	PausedAfterDelete
	// Done is terminal for non-repeating scripts once the last entry is typed.
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case PausedAfterType:
		return "paused-after-type"
	case Deleting:
		return "deleting"
	case PausedAfterDelete:
		return "paused-after-delete"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a snapshot of one animation. It is a value; Advance returns a new
// State and never mutates its input.
type State struct {
	Script      Script
	ActiveIndex int
	// Cursor counts the graphemes of the current target that are visible.
	Cursor int
	Phase  Phase

	pending    Script
	hasPending bool
}

// Text is the string to render right now. It is always a prefix of Target.
func (s State) Text() string {
	return s.Script.prefix(s.ActiveIndex, s.Cursor)
}

// Target is the full entry currently being typed or erased.
func (s State) Target() string {
	return s.Script.At(s.ActiveIndex)
}

// Pending returns the script waiting to replace the current one while stale
// text is erased under SwapDeleteFirst.
func (s State) Pending() (Script, bool) {
	return s.pending, s.hasPending
}

// Event is something that moves the machine forward.
type Event interface {
	isEvent()
}

// Tick is a scheduled timer firing.
type Tick struct{}

// Swap replaces the script while the animation is running.
type Swap struct {
	Script Script
}

func (Tick) isEvent() {}
func (Swap) isEvent() {}

// Start returns the initial state for script. An empty script yields Idle.
func Start(script Script, cfg Config) State {
	if script.Empty() {
		return State{Script: script, Phase: Idle}
	}
	return settle(State{Script: script, Phase: Typing}, cfg)
}

// Advance applies ev to s.
func Advance(s State, ev Event, cfg Config) State {
	switch ev := ev.(type) {
	case Tick:
		return tick(s, cfg)
	case Swap:
		return swap(s, ev.Script, cfg)
	default:
		return s
	}
}

// Delay reports how long to wait before delivering the next Tick. The second
// result is false when nothing should be scheduled.
func Delay(s State, cfg Config) (time.Duration, bool) {
	var d time.Duration
	switch s.Phase {
	case Typing:
		d = cfg.TypingSpeed
	case PausedAfterType:
		d = cfg.PostTypePause
	case Deleting:
		d = cfg.DeletingSpeed
	case PausedAfterDelete:
		d = cfg.PostDeletePause
	default:
		return 0, false
	}
	return clampDelay(d), true
}

func tick(s State, cfg Config) State {
	switch s.Phase {
	case Typing:
		if s.Cursor < s.Script.width(s.ActiveIndex) {
			s.Cursor++
		}
		return settle(s, cfg)
	case PausedAfterType:
		s.Phase = Deleting
		return settle(s, cfg)
	case Deleting:
		if s.Cursor > 0 {
			s.Cursor--
		}
		return settle(s, cfg)
	case PausedAfterDelete:
		s.Phase = Typing
		return settle(s, cfg)
	default:
		return s
	}
}

// settle applies the boundary transitions that happen without waiting: a
// fully typed entry starts its pause, and a fully erased entry hands over to
// the next one.
func settle(s State, cfg Config) State {
	switch s.Phase {
	case Typing:
		if s.Cursor < s.Script.width(s.ActiveIndex) {
			return s
		}
		if !cfg.Repeat && s.ActiveIndex == s.Script.Len()-1 {
			s.Phase = Done
			return s
		}
		s.Phase = PausedAfterType
		return s
	case Deleting:
		if s.Cursor > 0 {
			return s
		}
		if s.hasPending {
			s.Script, s.pending, s.hasPending = s.pending, Script{}, false
			s.ActiveIndex = 0
			if s.Script.Empty() {
				s.Phase = Idle
				return s
			}
		} else {
			s.ActiveIndex = (s.ActiveIndex + 1) % s.Script.Len()
		}
		if cfg.PostDeletePause > 0 {
			s.Phase = PausedAfterDelete
			return s
		}
		s.Phase = Typing
		return settle(s, cfg)
	default:
		return s
	}
}

func swap(s State, next Script, cfg Config) State {
	if cfg.Swap == SwapDeleteFirst && s.Phase != Idle && s.Cursor > 0 {
		s.pending, s.hasPending = next, true
		s.Phase = Deleting
		return s
	}
	return Start(next, cfg)
}
