package reveal

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultTypingSpeed     = 50 * time.Millisecond
	defaultDeletingSpeed   = defaultTypingSpeed / 2
	defaultPostTypePause   = 2 * time.Second
	defaultPostDeletePause = 200 * time.Millisecond
	defaultCaretInterval   = 500 * time.Millisecond
)

// SwapPolicy decides what happens to visible text when the script is replaced
// while an animation is running.
type SwapPolicy int

const (
	// SwapRestart drops whatever is on screen and starts typing the new
	// script immediately.
	SwapRestart SwapPolicy = iota
	// SwapDeleteFirst erases the stale text at deleting speed before the new
	// script starts typing.
	SwapDeleteFirst
)

func (p SwapPolicy) String() string {
	switch p {
	case SwapRestart:
		return "restart"
	case SwapDeleteFirst:
		return "delete"
	default:
		return fmt.Sprintf("SwapPolicy(%d)", int(p))
	}
}

// ParseSwapPolicy maps "restart" and "delete" (case-insensitive) to a policy.
// An empty string selects SwapRestart.
func ParseSwapPolicy(value string) (SwapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "restart":
		return SwapRestart, nil
	case "delete", "delete-first":
		return SwapDeleteFirst, nil
	default:
		return SwapRestart, fmt.Errorf("reveal: unknown swap policy %q", value)
	}
}

// Config controls the cadence of an animation.
type Config struct {
	TypingSpeed     time.Duration
	DeletingSpeed   time.Duration
	PostTypePause   time.Duration
	PostDeletePause time.Duration
	CaretInterval   time.Duration
	Repeat          bool
	Swap            SwapPolicy
}

// DefaultConfig returns the cadence used by the hero banner.
func DefaultConfig() Config {
	return Config{
		TypingSpeed:     defaultTypingSpeed,
		DeletingSpeed:   defaultDeletingSpeed,
		PostTypePause:   defaultPostTypePause,
		PostDeletePause: defaultPostDeletePause,
		CaretInterval:   defaultCaretInterval,
		Repeat:          true,
		Swap:            SwapRestart,
	}
}

// Normalize clamps negative delays to zero, which schedules the next step on
// the next tick. A non-positive caret interval falls back to the default so
// the caret never spins.
func (c Config) Normalize() Config {
	c.TypingSpeed = clampDelay(c.TypingSpeed)
	c.DeletingSpeed = clampDelay(c.DeletingSpeed)
	c.PostTypePause = clampDelay(c.PostTypePause)
	c.PostDeletePause = clampDelay(c.PostDeletePause)
	if c.CaretInterval <= 0 {
		c.CaretInterval = defaultCaretInterval
	}
	if c.Swap != SwapDeleteFirst {
		c.Swap = SwapRestart
	}
	return c
}

func clampDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
