package format

import (
	"testing"

	"reflow/internal/layout"
	"reflow/internal/token"
)

func word(text string, sep token.Separator) token.Token {
	return token.Token{Text: text, Sep: sep, Len: len(text)}
}

func TestWriterDropsSpaceBeforeNewline(t *testing.T) {
	w := NewWriter(2)
	w.WriteToken(word("hello", token.Space))
	w.WriteToken(word("world", token.Space))
	w.Newline()
	w.WriteToken(word("x", token.NoSep))

	got := w.Lines()
	if len(got) != 2 || got[0] != "hello world\n" || got[1] != "x" {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestWriterKeepsInnerAndLeadingSpaces(t *testing.T) {
	w := NewWriter(1)
	w.WriteToken(word("", token.Space))
	w.WriteToken(word("", token.Space))
	w.WriteToken(word("code", token.Space))
	w.WriteToken(word("", token.Space))
	w.WriteToken(word("x", token.Newline))
	w.Newline()
	if got := w.Lines()[0]; got != "  code  x\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterWhitespaceOnlyLineBecomesEmpty(t *testing.T) {
	w := NewWriter(1)
	for range 3 {
		w.WriteToken(word("", token.Space))
	}
	w.Newline()
	if got := w.Lines()[0]; got != "\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterBreakCharStays(t *testing.T) {
	w := NewWriter(1)
	w.WriteToken(word("well", token.Break('-')))
	w.Newline()
	w.WriteToken(word("", token.Break('-')))
	w.WriteToken(word("", token.Space))
	w.WriteToken(word("item", token.Newline))
	w.Newline()
	got := w.Lines()
	if got[0] != "well-\n" || got[1] != "- item\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitStripFinalNewline(t *testing.T) {
	lines := []layout.Line{
		{Tokens: []token.Token{word("a", token.Space), word("b", token.Newline)}, Hard: true},
		{},
		{Tokens: []token.Token{word("c", token.NoSep)}, Hard: true},
	}
	got := Emit(lines, Options{})
	if Join(got) != "a b\n\nc\n" {
		t.Fatalf("Emit() = %q", got)
	}
	got = Emit(lines, Options{StripFinalNewline: true})
	if Join(got) != "a b\n\nc" || got[2] != "c" {
		t.Fatalf("Emit(strip) = %q", got)
	}
	if len(Emit(nil, Options{StripFinalNewline: true})) != 0 {
		t.Fatal("no lines in, no lines out")
	}
}

func TestWriterJoinsSoftLineEnd(t *testing.T) {
	w := NewWriter(1)
	w.WriteToken(word("first", token.Space))
	w.WriteToken(word("line", token.Newline))
	w.WriteToken(word("second", token.NoSep))
	w.Newline()
	if got := w.Lines()[0]; got != "first line second\n" {
		t.Fatalf("got %q", got)
	}
}
