package reveal

import (
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler runs f once after d. The returned stop func cancels the call and
// reports whether it prevented f from running.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// ClockScheduler adapts a clock.Clock to Scheduler.
type ClockScheduler struct {
	Clock clock.Clock
}

// AfterFunc implements Scheduler.
func (s ClockScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	c := s.Clock
	if c == nil {
		c = clock.New()
	}
	return c.AfterFunc(d, f).Stop
}

// Frame is what a rendering surface needs to draw one animation.
type Frame struct {
	Text         string
	CaretVisible bool
	Phase        Phase
	Index        int
}

// Option customises an Animator.
type Option func(*Animator)

// WithClock drives the animator from c instead of the wall clock.
func WithClock(c clock.Clock) Option {
	return func(a *Animator) {
		a.sched = ClockScheduler{Clock: c}
	}
}

// WithScheduler replaces the timer source entirely.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) {
		a.sched = s
	}
}

// WithObserver registers fn to receive a Frame after every change. fn runs on
// timer goroutines while the animator is locked and must not call back into
// the Animator.
func WithObserver(fn func(Frame)) Option {
	return func(a *Animator) {
		a.observer = fn
	}
}

// Animator schedules a State on real (or injected) timers. At most one step
// timer and one caret timer are pending at any moment.
type Animator struct {
	mu       sync.Mutex
	sched    Scheduler
	cfg      Config
	state    State
	caret    Caret
	running  bool
	observer func(Frame)

	stepStop  func() bool
	stepGen   uint64
	blinkStop func() bool
	blinkGen  uint64
}

// NewAnimator prepares an animation for script. Nothing runs until Start.
func NewAnimator(script Script, cfg Config, opts ...Option) *Animator {
	cfg = cfg.Normalize()
	a := &Animator{
		sched: ClockScheduler{Clock: clock.New()},
		cfg:   cfg,
		state: Start(script, cfg),
		caret: NewCaret(cfg.CaretInterval),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start begins scheduling. Calling Start on a running animator does nothing.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	a.scheduleStep()
	a.scheduleBlink()
	a.notify()
}

// Stop cancels every pending timer. Timers that already fired become no-ops.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	a.cancelStep()
	a.cancelBlink()
}

// SetScript swaps the script according to the configured SwapPolicy and
// discards the pending step timer.
func (a *Animator) SetScript(script Script) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = Advance(a.state, Swap{Script: script}, a.cfg)
	log.Printf("[reveal] script swapped (entries=%d, policy=%s, phase=%s)", script.Len(), a.cfg.Swap, a.state.Phase)
	if !a.running {
		return
	}
	a.scheduleStep()
	switch {
	case a.state.Phase == Idle:
		a.cancelBlink()
	case a.blinkStop == nil:
		a.scheduleBlink()
	}
	a.notify()
}

// Snapshot returns the current frame.
func (a *Animator) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame()
}

// State returns the underlying machine state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Animator) frame() Frame {
	return Frame{
		Text:         a.state.Text(),
		CaretVisible: a.caret.Visible && a.state.Phase != Idle,
		Phase:        a.state.Phase,
		Index:        a.state.ActiveIndex,
	}
}

func (a *Animator) notify() {
	if a.observer != nil {
		a.observer(a.frame())
	}
}

func (a *Animator) scheduleStep() {
	a.cancelStep()
	d, ok := Delay(a.state, a.cfg)
	if !ok {
		return
	}
	gen := a.stepGen
	a.stepStop = a.sched.AfterFunc(d, func() { a.onStep(gen) })
}

func (a *Animator) cancelStep() {
	a.stepGen++
	if a.stepStop != nil {
		a.stepStop()
		a.stepStop = nil
	}
}

func (a *Animator) onStep(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running || gen != a.stepGen {
		return
	}
	a.stepStop = nil
	a.state = Advance(a.state, Tick{}, a.cfg)
	a.scheduleStep()
	a.notify()
}

func (a *Animator) scheduleBlink() {
	a.cancelBlink()
	if a.state.Phase == Idle {
		return
	}
	gen := a.blinkGen
	a.blinkStop = a.sched.AfterFunc(a.caret.Interval, func() { a.onBlink(gen) })
}

func (a *Animator) cancelBlink() {
	a.blinkGen++
	if a.blinkStop != nil {
		a.blinkStop()
		a.blinkStop = nil
	}
}

func (a *Animator) onBlink(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running || gen != a.blinkGen {
		return
	}
	a.blinkStop = nil
	a.caret = a.caret.Toggle()
	a.scheduleBlink()
	a.notify()
}
