package reveal

import "time"

// Caret is the blinking cursor drawn after the text. It runs on its own
// interval and never looks at the animation phase.
type Caret struct {
	Visible  bool
	Interval time.Duration
}

// NewCaret returns a visible caret. A non-positive interval uses the default.
func NewCaret(interval time.Duration) Caret {
	if interval <= 0 {
		interval = defaultCaretInterval
	}
	return Caret{Visible: true, Interval: interval}
}

// Toggle flips visibility.
func (c Caret) Toggle() Caret {
	c.Visible = !c.Visible
	return c
}
