package lexer

import (
	"testing"

	"reflow/internal/source"
)

func TestCursorRunes(t *testing.T) {
	c := NewCursor(source.RawLine{Text: "aé\n", Span: source.Span{File: 1, Start: 10, End: 14}})
	m := c.Mark()
	if r := c.Bump(); r != 'a' {
		t.Fatalf("Bump() = %q, want 'a'", r)
	}
	if r, sz := c.Peek(); r != 'é' || sz != 2 {
		t.Fatalf("Peek() = %q/%d, want 'é'/2", r, sz)
	}
	c.Bump()
	if got := c.TextFrom(m); got != "aé" {
		t.Errorf("TextFrom = %q", got)
	}
	if sp := c.SpanFrom(m); sp != (source.Span{File: 1, Start: 10, End: 13}) {
		t.Errorf("SpanFrom = %v", sp)
	}
	c.Bump()
	if !c.EOF() {
		t.Error("expected EOF")
	}
	if r := c.Bump(); r != 0xFFFD {
		t.Errorf("Bump at EOF = %q", r)
	}
}
