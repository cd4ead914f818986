package reveal

import (
	"strings"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		TypingSpeed:   10 * time.Millisecond,
		DeletingSpeed: 5 * time.Millisecond,
		Repeat:        true,
	}
}

func tickN(s State, cfg Config, n int) State {
	for i := 0; i < n; i++ {
		s = Advance(s, Tick{}, cfg)
	}
	return s
}

// trace collects Text after every tick, collapsing consecutive duplicates.
func trace(s State, cfg Config, ticks int) []string {
	var out []string
	for i := 0; i < ticks; i++ {
		s = Advance(s, Tick{}, cfg)
		text := s.Text()
		if len(out) > 0 && out[len(out)-1] == text {
			continue
		}
		out = append(out, text)
	}
	return out
}

func TestCycleTrace(t *testing.T) {
	cfg := fastConfig()
	s := Start(NewScript("Hi", "Yo"), cfg)
	if s.Phase != Typing || s.Text() != "" || s.ActiveIndex != 0 {
		t.Fatalf("unexpected initial state: %+v", s)
	}

	got := trace(s, cfg, 11)
	want := []string{"H", "Hi", "H", "", "Y", "Yo", "Y", "", "H"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("trace mismatch\nwant %q\ngot  %q", want, got)
	}
}

func TestTypingRevealsFirstEntry(t *testing.T) {
	cases := []struct {
		name  string
		entry string
		ticks int
	}{
		{name: "ascii", entry: "Gopher", ticks: 6},
		{name: "combining", entry: "café", ticks: 4},
		{name: "emoji", entry: "hi 👋🏽", ticks: 4},
		{name: "single", entry: "x", ticks: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			s := Start(NewScript(tc.entry, "next"), cfg)
			s = tickN(s, cfg, tc.ticks-1)
			if s.Text() == tc.entry {
				t.Fatalf("entry complete one tick early: %q", s.Text())
			}
			if !strings.HasPrefix(tc.entry, s.Text()) {
				t.Fatalf("%q is not a prefix of %q", s.Text(), tc.entry)
			}
			s = Advance(s, Tick{}, cfg)
			if s.Text() != tc.entry {
				t.Fatalf("text mismatch: got %q want %q", s.Text(), tc.entry)
			}
			if s.Phase != PausedAfterType {
				t.Fatalf("phase mismatch: got %v want %v", s.Phase, PausedAfterType)
			}
		})
	}
}

func TestDeletionAdvancesIndex(t *testing.T) {
	cfg := DefaultConfig()
	s := Start(NewScript("abc", "de", "f"), cfg)

	s = tickN(s, cfg, 3) // typed "abc"
	s = Advance(s, Tick{}, cfg)
	if s.Phase != Deleting {
		t.Fatalf("pause should hand over to deleting, got %v", s.Phase)
	}
	s = tickN(s, cfg, 3)
	if s.Text() != "" {
		t.Fatalf("text not erased: %q", s.Text())
	}
	if s.ActiveIndex != 1 {
		t.Fatalf("index not advanced: %d", s.ActiveIndex)
	}
	if s.Phase != PausedAfterDelete {
		t.Fatalf("expected post-delete pause, got %v", s.Phase)
	}
	s = Advance(s, Tick{}, cfg)
	if s.Phase != Typing || s.Target() != "de" {
		t.Fatalf("expected to type %q, got phase=%v target=%q", "de", s.Phase, s.Target())
	}
}

func TestIndexWrapsAround(t *testing.T) {
	cfg := fastConfig()
	s := Start(NewScript("a", "b"), cfg)
	// a: type, pause, delete; b: type, pause, delete.
	s = tickN(s, cfg, 6)
	if s.ActiveIndex != 0 {
		t.Fatalf("index should wrap to 0, got %d", s.ActiveIndex)
	}
	if s.Phase != Typing || s.Text() != "" {
		t.Fatalf("expected fresh typing state, got %+v", s)
	}
}

func TestTypeThenDeleteRestoresStart(t *testing.T) {
	cfg := fastConfig()
	start := Start(NewScript("round"), cfg)
	s := tickN(start, cfg, 5)
	if s.Text() != "round" {
		t.Fatalf("typing incomplete: %q", s.Text())
	}
	s = tickN(s, cfg, 6)
	if s.Text() != start.Text() || s.Phase != start.Phase || s.ActiveIndex != start.ActiveIndex || s.Cursor != start.Cursor {
		t.Fatalf("round trip mismatch\nstart %+v\nend   %+v", start, s)
	}
}

func TestNonRepeatingStopsAfterLastEntry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repeat = false
	s := Start(NewScript("one", "two"), cfg)

	for i := 0; i < 100 && s.Phase != Done; i++ {
		s = Advance(s, Tick{}, cfg)
	}
	if s.Phase != Done {
		t.Fatalf("machine never finished, phase=%v", s.Phase)
	}
	if s.Text() != "two" || s.ActiveIndex != 1 {
		t.Fatalf("expected last entry on screen, got %q (index %d)", s.Text(), s.ActiveIndex)
	}
	if _, ok := Delay(s, cfg); ok {
		t.Fatal("done state should not schedule anything")
	}
	after := tickN(s, cfg, 5)
	if after.Text() != s.Text() || after.Phase != s.Phase || after.Cursor != s.Cursor {
		t.Fatalf("ticks after done changed state: %+v", after)
	}
}

func TestSingleEntryNonRepeatMatchesTypewriter(t *testing.T) {
	cfg := Config{TypingSpeed: 70 * time.Millisecond}
	s := Start(NewScript("Edit Blog Post"), cfg)
	s = tickN(s, cfg, len("Edit Blog Post"))
	if s.Phase != Done {
		t.Fatalf("expected done after a single pass, got %v", s.Phase)
	}
}

func TestEmptyScriptIsIdle(t *testing.T) {
	cfg := DefaultConfig()
	s := Start(NewScript(), cfg)
	if s.Phase != Idle {
		t.Fatalf("phase mismatch: %v", s.Phase)
	}
	if _, ok := Delay(s, cfg); ok {
		t.Fatal("idle state should not schedule")
	}
	s = tickN(s, cfg, 3)
	if s.Text() != "" || s.Phase != Idle {
		t.Fatalf("idle state changed: %+v", s)
	}
}

func TestEmptyEntriesAreSkipped(t *testing.T) {
	cfg := fastConfig()
	s := Start(NewScript("", "x"), cfg)
	if s.Phase != PausedAfterType {
		t.Fatalf("empty entry should count as fully typed, got %v", s.Phase)
	}
	for i := 0; i < 10 && s.Text() != "x"; i++ {
		s = Advance(s, Tick{}, cfg)
	}
	if s.Text() != "x" {
		t.Fatalf("never reached the second entry: %+v", s)
	}
}

func TestSwapRestartsImmediately(t *testing.T) {
	cfg := fastConfig()
	s := Start(NewScript("Hi"), cfg)
	s = Advance(s, Tick{}, cfg)
	if s.Text() != "H" {
		t.Fatalf("setup: got %q", s.Text())
	}

	s = Advance(s, Swap{Script: NewScript("Bye")}, cfg)
	if s.Text() != "" || s.ActiveIndex != 0 || s.Phase != Typing {
		t.Fatalf("swap did not reset: %+v", s)
	}
	for i := 0; i < 3; i++ {
		s = Advance(s, Tick{}, cfg)
		if !strings.HasPrefix("Bye", s.Text()) {
			t.Fatalf("stale text rendered after swap: %q", s.Text())
		}
	}
	if s.Text() != "Bye" {
		t.Fatalf("new script not typed: %q", s.Text())
	}
}

func TestSwapInterruptsEveryPhase(t *testing.T) {
	cfg := DefaultConfig()
	script := NewScript("ab")
	states := map[string]State{
		"typing":        tickN(Start(script, cfg), cfg, 1),
		"paused":        tickN(Start(script, cfg), cfg, 2),
		"deleting":      tickN(Start(script, cfg), cfg, 4),
		"paused-delete": tickN(Start(script, cfg), cfg, 5),
	}
	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			got := Advance(s, Swap{Script: NewScript("zz")}, cfg)
			if got.Phase != Typing || got.Cursor != 0 || got.ActiveIndex != 0 || got.Target() != "zz" {
				t.Fatalf("swap from %v left %+v", s.Phase, got)
			}
		})
	}
}

func TestSwapDeleteFirstErasesStaleText(t *testing.T) {
	cfg := fastConfig()
	cfg.Swap = SwapDeleteFirst
	cfg.PostDeletePause = 100 * time.Millisecond
	s := tickN(Start(NewScript("Hello"), cfg), cfg, 3)
	if s.Text() != "Hel" {
		t.Fatalf("setup: got %q", s.Text())
	}

	s = Advance(s, Swap{Script: NewScript("Bye")}, cfg)
	if s.Phase != Deleting {
		t.Fatalf("expected deleting, got %v", s.Phase)
	}
	if pending, ok := s.Pending(); !ok || pending.At(0) != "Bye" {
		t.Fatalf("pending script not recorded: %v %v", pending.Lines(), ok)
	}

	got := trace(s, cfg, 3)
	if strings.Join(got, "|") != "He|H|" {
		t.Fatalf("unexpected erase trace: %q", got)
	}
	s = tickN(s, cfg, 3)
	if s.Target() != "Bye" || s.ActiveIndex != 0 || s.Phase != PausedAfterDelete {
		t.Fatalf("new script not installed: %+v", s)
	}
	if _, ok := s.Pending(); ok {
		t.Fatal("pending script should be cleared")
	}
	s = tickN(s, cfg, 2)
	if s.Text() != "B" {
		t.Fatalf("expected typing of new script, got %q", s.Text())
	}
}

func TestSwapDeleteFirstWithNothingVisibleRestarts(t *testing.T) {
	cfg := fastConfig()
	cfg.Swap = SwapDeleteFirst
	s := Start(NewScript("Hello"), cfg)
	s = Advance(s, Swap{Script: NewScript("Bye")}, cfg)
	if s.Phase != Typing || s.Target() != "Bye" {
		t.Fatalf("expected immediate restart, got %+v", s)
	}
}

func TestSwapToEmptyScriptGoesIdle(t *testing.T) {
	cfg := fastConfig()
	s := tickN(Start(NewScript("Hi"), cfg), cfg, 1)
	s = Advance(s, Swap{Script: NewScript()}, cfg)
	if s.Phase != Idle || s.Text() != "" {
		t.Fatalf("expected idle, got %+v", s)
	}
}

func TestDelayFollowsPhase(t *testing.T) {
	cfg := Config{
		TypingSpeed:     1 * time.Millisecond,
		DeletingSpeed:   2 * time.Millisecond,
		PostTypePause:   3 * time.Millisecond,
		PostDeletePause: -4 * time.Millisecond,
	}
	cases := []struct {
		phase Phase
		want  time.Duration
		ok    bool
	}{
		{phase: Typing, want: time.Millisecond, ok: true},
		{phase: PausedAfterType, want: 3 * time.Millisecond, ok: true},
		{phase: Deleting, want: 2 * time.Millisecond, ok: true},
		{phase: PausedAfterDelete, want: 0, ok: true},
		{phase: Done},
		{phase: Idle},
	}
	for _, tc := range cases {
		got, ok := Delay(State{Phase: tc.phase}, cfg)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Delay(%v) = %v, %v; want %v, %v", tc.phase, got, ok, tc.want, tc.ok)
		}
	}
}
