package format

import (
	"reflow/internal/token"
)

// Writer accumulates output lines. Separators are written lazily so that a
// space never ends up right before a line terminator.
type Writer struct {
	buf     []byte
	pending []byte // separator bytes not yet committed to buf
	lines   []string
}

// NewWriter creates a new writer sized for roughly n lines.
func NewWriter(n int) *Writer {
	return &Writer{
		buf:   make([]byte, 0, 128),
		lines: make([]string, 0, n),
	}
}

// WriteString writes text to the current line, committing pending separators.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.flushPending()
	w.buf = append(w.buf, s...)
}

// Space queues a single space.
func (w *Writer) Space() {
	w.pending = append(w.pending, ' ')
}

// WriteToken writes a word followed by its separator. A break character is
// part of the visible text; a space is only queued. A soft line end (a word
// closed by a newline or by the end of input) joins the next word with a space.
func (w *Writer) WriteToken(tok token.Token) {
	w.WriteString(tok.Text)
	switch tok.Sep.Kind {
	case token.SepSpace, token.SepNewline, token.SepNone:
		w.Space()
	case token.SepBreak:
		w.WriteString(string(tok.Sep.Char))
	}
}

// Newline terminates the current line. Queued spaces are dropped.
func (w *Writer) Newline() {
	w.pending = w.pending[:0]
	w.buf = append(w.buf, '\n')
	w.lines = append(w.lines, string(w.buf))
	w.buf = w.buf[:0]
}

// Lines returns the finished lines, each ending in '\n'. Text written after
// the last Newline is returned as a final unterminated line.
func (w *Writer) Lines() []string {
	if len(w.buf) == 0 {
		return w.lines
	}
	return append(w.lines, string(w.buf))
}

func (w *Writer) flushPending() {
	if len(w.pending) == 0 {
		return
	}
	w.buf = append(w.buf, w.pending...)
	w.pending = w.pending[:0]
}
