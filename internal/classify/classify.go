package classify

import (
	"unicode/utf8"

	"reflow/internal/token"
)

// Options configures the classifier.
type Options struct {
	PreserveBreaks bool
	StartChars     token.CharSet
	// Width is the reference width for the "would have fit" rule.
	Width int
}

// Boundary classifies the break between cur and next.
func Boundary(cur, next token.Line, opts Options) Decision {
	if !opts.PreserveBreaks {
		return Decision{Rule: RuleDisabled}
	}

	first := next.First()
	if next.IsEmpty() || first.IsHardBreak() {
		return Decision{Manual: true, Rule: RuleEmptyLine}
	}
	if first.Empty() {
		switch first.Sep.Kind {
		case token.SepSpace:
			if opts.StartChars.Has(' ') {
				return Decision{Manual: true, Rule: RuleIndent}
			}
		case token.SepBreak:
			if opts.StartChars.Has(first.Sep.Char) {
				return Decision{Manual: true, Rule: RuleStartBreakChar}
			}
		}
	}
	if first.Len+cur.OrigLen <= opts.Width {
		return Decision{Manual: true, Rule: RuleFits}
	}
	// пустое слово не индексируем
	if !first.Empty() {
		r, _ := utf8.DecodeRuneInString(first.Text)
		if opts.StartChars.Has(r) {
			return Decision{Manual: true, Rule: RuleStartChar}
		}
	}
	return Decision{Rule: RuleSoft}
}

// Lines classifies the boundary after every line. The result has one entry per
// line; the last entry is always soft.
func Lines(lines []token.Line, opts Options) []Decision {
	out := make([]Decision, len(lines))
	for i := 0; i+1 < len(lines); i++ {
		out[i] = Boundary(lines[i], lines[i+1], opts)
	}
	if n := len(lines); n > 0 {
		out[n-1] = Decision{Rule: RuleLastLine}
	}
	return out
}

// CountManual returns how many decisions keep their break.
func CountManual(ds []Decision) int {
	n := 0
	for _, d := range ds {
		if d.Manual {
			n++
		}
	}
	return n
}
