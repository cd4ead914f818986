package reveal

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Script is the ordered list of strings an animation cycles through. Each
// entry is split into grapheme clusters once so typing and deleting never
// cut an emoji or a combining sequence in half.
type Script struct {
	entries []entry
}

type entry struct {
	text      string
	graphemes []string
}

// NewScript builds a Script from the given lines. The input slice is copied.
func NewScript(lines ...string) Script {
	entries := make([]entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, entry{text: line, graphemes: splitGraphemes(line)})
	}
	return Script{entries: entries}
}

// Len reports the number of entries.
func (s Script) Len() int {
	return len(s.entries)
}

// Empty reports whether the script has nothing to show.
func (s Script) Empty() bool {
	return len(s.entries) == 0
}

// At returns the full text of entry i.
func (s Script) At(i int) string {
	if i < 0 || i >= len(s.entries) {
		return ""
	}
	return s.entries[i].text
}

// Lines returns a copy of the script entries.
func (s Script) Lines() []string {
	lines := make([]string, len(s.entries))
	for i, e := range s.entries {
		lines[i] = e.text
	}
	return lines
}

// Equal reports whether both scripts hold the same entries in the same order.
func (s Script) Equal(other Script) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for i := range s.entries {
		if s.entries[i].text != other.entries[i].text {
			return false
		}
	}
	return true
}

func (s Script) width(i int) int {
	if i < 0 || i >= len(s.entries) {
		return 0
	}
	return len(s.entries[i].graphemes)
}

func (s Script) prefix(i, n int) string {
	if i < 0 || i >= len(s.entries) || n <= 0 {
		return ""
	}
	g := s.entries[i].graphemes
	if n >= len(g) {
		return s.entries[i].text
	}
	return strings.Join(g[:n], "")
}

func splitGraphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}
