package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one screen redraw. ANSI keeps the escape sequences; Plain is the
// visible text with trailing blanks removed.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

// Lines splits the visible text into screen rows.
func (f Frame) Lines() []string {
	if f.Plain == "" {
		return nil
	}
	return strings.Split(f.Plain, "\n")
}

// Contains reports whether substr is visible in the frame.
func (f Frame) Contains(substr string) bool {
	return strings.Contains(f.Plain, substr)
}

var (
	// eraseDisplay (CSI n J) starts a fresh screen in Bubble Tea's renderer.
	eraseDisplay = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	// escapes matches OSC strings, CSI sequences and shift in/out.
	escapes = regexp.MustCompile(`\x1b\][^\x07]*(?:\x07|\x1b\\)|\x1b\[[0-9;?]*[A-Za-z]|[\x0e\x0f]`)
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range screenChunks(stream) {
		visible := visibleText(chunk)
		if visible == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: chunk, Plain: visible})
	}
	if len(frames) == 0 && stream != "" {
		// Programs that never clear the screen still produce one frame.
		frames = append(frames, Frame{ANSI: stream, Plain: visibleText(stream)})
	}
	return frames
}

// screenChunks cuts the stream at every erase-display sequence and drops the
// cursor-home that usually follows it.
func screenChunks(stream string) []string {
	parts := eraseDisplay.Split(stream, -1)
	chunks := parts[:0]
	for _, part := range parts {
		part = strings.TrimPrefix(strings.Trim(part, "\x00"), "\x1b[H")
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}

// visibleText strips escapes, right-trims every row and drops trailing blank
// rows. It returns "" for a chunk that draws nothing.
func visibleText(chunk string) string {
	rows := strings.Split(escapes.ReplaceAllString(chunk, ""), "\n")
	last := -1
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, " ")
		if strings.TrimSpace(rows[i]) != "" {
			last = i
		}
	}
	return strings.Join(rows[:last+1], "\n")
}

// FinalFrame returns the last frame, or false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// FrameContaining returns the newest frame showing substr.
func (r *Recording) FrameContaining(substr string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if r.Frames[i].Contains(substr) {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

// Plain joins every frame's visible text, oldest first.
func (r *Recording) Plain() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Frames))
	for _, f := range r.Frames {
		parts = append(parts, f.Plain)
	}
	return strings.Join(parts, "\n")
}
