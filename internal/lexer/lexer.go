package lexer

import (
	"reflow/internal/source"
	"reflow/internal/token"
)

// Lexer cuts raw lines into words and separators.
type Lexer struct {
	opts Options
}

// New creates a lexer. A zero Options value has no break characters.
func New(opts Options) *Lexer {
	return &Lexer{opts: opts}
}

// Lines tokenizes every raw line in order.
func (lx *Lexer) Lines(raws []source.RawLine) []token.Line {
	out := make([]token.Line, len(raws))
	for i, raw := range raws {
		out[i] = lx.Line(i, raw)
	}
	return out
}

// Line tokenizes a single raw line. It never fails: every string is accepted.
//
// A space closes the current word with token.Space, a break character closes it
// with token.Break(c), the terminating newline closes a non-empty word with
// token.Newline, and running out of input closes it with token.NoSep. Spaces
// after the last word produce no token; a line of spaces only keeps one empty
// token.Space per space. A line without any token becomes a single hard break.
func (lx *Lexer) Line(index int, raw source.RawLine) token.Line {
	cur := NewCursor(raw)
	toks := make([]token.Token, 0, 8)
	start := cur.Mark()

	emit := func(sep token.Separator, end Mark) {
		text := raw.Text[start:end]
		toks = append(toks, token.Token{
			Text: text,
			Sep:  sep,
			Len:  lx.opts.Measure.Width(text),
			Span: source.Span{
				File:  raw.Span.File,
				Start: raw.Span.Start + uint32(start),
				End:   raw.Span.Start + uint32(end),
			},
		})
	}

	for !cur.EOF() {
		r, _ := cur.Peek()
		end := cur.Mark()
		switch {
		case r == ' ':
			cur.Bump()
			emit(token.Space, end)
			start = cur.Mark()
		case r == '\n':
			cur.Bump()
			if end > start {
				emit(token.Newline, end)
			}
			start = cur.Mark()
		case lx.opts.BreakChars.Has(r):
			cur.Bump()
			emit(token.Break(r), end)
			start = cur.Mark()
		default:
			cur.Bump()
		}
	}
	if end := cur.Mark(); end > start {
		emit(token.NoSep, end)
	}
	toks = trimTrailingBlanks(toks, raw.HasNewline())

	if len(toks) == 0 {
		toks = append(toks, token.HardBreak(cur.SpanFrom(0)))
	}

	return token.Line{
		Index:   index,
		Tokens:  toks,
		OrigLen: lx.opts.Measure.Width(raw.Body()),
		Span:    raw.Span,
	}
}

// trimTrailingBlanks drops the empty space tokens after the last word and
// closes that word as if the spaces were never there.
func trimTrailingBlanks(toks []token.Token, newline bool) []token.Token {
	n := len(toks)
	for n > 0 && isBlank(toks[n-1]) {
		n--
	}
	if n == 0 {
		return toks
	}
	toks = toks[:n]
	if last := &toks[n-1]; last.Sep.Kind == token.SepSpace {
		last.Sep = token.NoSep
		if newline {
			last.Sep = token.Newline
		}
	}
	return toks
}

func isBlank(t token.Token) bool {
	return t.Empty() && t.Sep.Kind == token.SepSpace
}
