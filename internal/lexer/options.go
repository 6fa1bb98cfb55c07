package lexer

import (
	"reflow/internal/token"
)

// Options steers how a line is cut into tokens.
type Options struct {
	BreakChars token.CharSet // символы, после которых слово можно перенести
	Measure    token.Measure // как считать ширину слова
}

// DefaultOptions returns the stock break characters and rune counting.
func DefaultOptions() Options {
	return Options{
		BreakChars: token.DefaultBreakChars(),
		Measure:    token.MeasureChars,
	}
}
