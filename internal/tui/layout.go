package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	contentWidth int
	topPadding   int
}

func newPageLayout() pageLayout {
	return pageLayout{contentWidth: 60}
}

// Update recomputes the layout for a new window size. The banner is kept
// roughly vertically centred; the content never shrinks below
// minContentWidth.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	inner := width - horizontalPadding
	if inner < minContentWidth {
		inner = minContentWidth
	}
	l.contentWidth = inner
	const bannerHeight = 9
	l.topPadding = (height - bannerHeight) / 3
	if l.topPadding < 0 {
		l.topPadding = 0
	}
}

// fit truncates a rendered line to the content width, keeping ANSI styling.
func (l pageLayout) fit(line string) string {
	if lipgloss.Width(line) <= l.contentWidth {
		return line
	}
	return truncate.StringWithTail(line, uint(l.contentWidth), "…")
}

func (l pageLayout) wrap(text string) string {
	return wordwrap.String(text, l.contentWidth)
}

func (l pageLayout) center(block string) string {
	if l.windowWidth <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(l.windowWidth, lipgloss.Center, block)
}

func (l pageLayout) pad(view string) string {
	if l.topPadding == 0 {
		return view
	}
	return strings.Repeat("\n", l.topPadding) + view
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
