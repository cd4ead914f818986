package tuitest

import (
	"bytes"
	"io"
)

// queryReplies answers the capability probes termenv and Bubble Tea send at
// startup. Without a reply the program waits for its query timeout.
var queryReplies = []struct {
	query, reply string
}{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	// Keep a tail so queries split across reads are still seen.
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerOne replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerOne() bool {
	first, which := -1, -1
	for i, q := range queryReplies {
		idx := bytes.Index(tr.buf, []byte(q.query))
		if idx >= 0 && (first < 0 || idx < first) {
			first, which = idx, i
		}
	}
	if which < 0 {
		return false
	}
	tr.buf = tr.buf[first+len(queryReplies[which].query):]
	_, _ = io.WriteString(tr.w, queryReplies[which].reply)
	return true
}
