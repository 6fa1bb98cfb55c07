package token

import (
	"reflow/internal/source"
)

// Separator is the character that closed a word.
type Separator struct {
	Kind SepKind
	Char rune // только для SepBreak
}

var (
	// NoSep marks a word at the very end of input.
	NoSep = Separator{Kind: SepNone}
	// Space is the plain word separator.
	Space = Separator{Kind: SepSpace}
	// Newline terminates a line.
	Newline = Separator{Kind: SepNewline}
)

// Break returns a break-character separator for c.
func Break(c rune) Separator {
	return Separator{Kind: SepBreak, Char: c}
}

// Text returns the characters the separator contributes when a line continues
// after it. Newline and none contribute nothing here; line termination is the
// emitter's job.
func (s Separator) Text() string {
	switch s.Kind {
	case SepSpace:
		return " "
	case SepBreak:
		return string(s.Char)
	default:
		return ""
	}
}

func (s Separator) String() string {
	if s.Kind == SepBreak {
		return "break(" + string(s.Char) + ")"
	}
	return s.Kind.String()
}

// Token is a word and the separator that followed it in the source.
type Token struct {
	Text string
	Sep  Separator
	Len  int
	Span source.Span
}

// HardBreak builds the empty newline token used for empty lines and for
// breaks inserted after a manual boundary.
func HardBreak(sp source.Span) Token {
	return Token{Sep: Newline, Span: sp}
}

// Empty reports whether the token carries no word characters.
func (t Token) Empty() bool { return t.Text == "" }

// IsHardBreak reports whether the token forces a line boundary.
func (t Token) IsHardBreak() bool {
	return t.Text == "" && t.Sep.Kind == SepNewline
}

// IsBreakChar reports whether the word is closed by a break character.
func (t Token) IsBreakChar() bool { return t.Sep.Kind == SepBreak }

// Line holds the tokens of one source line.
type Line struct {
	Index   int // 0-based line number after loading
	Tokens  []Token
	OrigLen int // measured width excluding the line terminator
	Span    source.Span
}

// First returns the leading token of the line. Tokenized lines always have at
// least one token; the zero Token is returned otherwise.
func (l Line) First() Token {
	if len(l.Tokens) == 0 {
		return Token{}
	}
	return l.Tokens[0]
}

// Last returns the trailing token of the line.
func (l Line) Last() Token {
	if len(l.Tokens) == 0 {
		return Token{}
	}
	return l.Tokens[len(l.Tokens)-1]
}

// IsEmpty reports whether the line was empty in the source.
func (l Line) IsEmpty() bool {
	return len(l.Tokens) == 1 && l.Tokens[0].IsHardBreak()
}

// Words returns the non-empty word texts of the line in order.
func (l Line) Words() []string {
	out := make([]string, 0, len(l.Tokens))
	for _, t := range l.Tokens {
		if t.Text != "" {
			out = append(out, t.Text)
		}
	}
	return out
}
