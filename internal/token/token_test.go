package token_test

import (
	"testing"

	"reflow/internal/source"
	"reflow/internal/token"
)

func TestSeparatorText(t *testing.T) {
	cases := []struct {
		sep  token.Separator
		want string
	}{
		{token.Space, " "},
		{token.Break('-'), "-"},
		{token.Newline, ""},
		{token.NoSep, ""},
	}
	for _, c := range cases {
		if got := c.sep.Text(); got != c.want {
			t.Errorf("%s.Text() = %q, want %q", c.sep, got, c.want)
		}
	}
	if token.Break('/').String() != "break(/)" {
		t.Errorf("unexpected String() %q", token.Break('/').String())
	}
}

func TestHardBreak(t *testing.T) {
	hb := token.HardBreak(source.Span{})
	if !hb.IsHardBreak() || !hb.Empty() {
		t.Fatal("HardBreak must be an empty newline token")
	}
	soft := token.Token{Text: "word", Sep: token.Newline, Len: 4}
	if soft.IsHardBreak() {
		t.Fatal("a word ending its line is a soft boundary")
	}
}

func TestLineHelpers(t *testing.T) {
	line := token.Line{Tokens: []token.Token{
		{Sep: token.Space},
		{Text: "a", Sep: token.Break('-'), Len: 1},
		{Text: "b", Sep: token.Newline, Len: 1},
	}}
	if line.First().Text != "" || line.Last().Text != "b" {
		t.Fatalf("First/Last mismatch: %+v", line.Tokens)
	}
	words := line.Words()
	if len(words) != 2 || words[0] != "a" || words[1] != "b" {
		t.Fatalf("Words() = %q", words)
	}
	if line.IsEmpty() {
		t.Fatal("line with words is not empty")
	}
	if (token.Line{}).First() != (token.Token{}) {
		t.Fatal("zero line must yield zero token")
	}
}
