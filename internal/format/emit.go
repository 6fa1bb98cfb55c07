package format

import (
	"strings"

	"reflow/internal/layout"
)

// Options controls emission.
type Options struct {
	// StripFinalNewline removes the terminator of the last line. Set it when
	// the input did not end with a newline.
	StripFinalNewline bool
}

// Emit serializes packed lines. Each returned line ends with '\n' except,
// with StripFinalNewline, the last one.
func Emit(lines []layout.Line, opt Options) []string {
	w := NewWriter(len(lines))
	for _, l := range lines {
		for _, tok := range l.Tokens {
			w.WriteToken(tok)
		}
		w.Newline()
	}
	out := w.Lines()
	if opt.StripFinalNewline && len(out) > 0 {
		out[len(out)-1] = strings.TrimSuffix(out[len(out)-1], "\n")
	}
	return out
}

// Join concatenates emitted lines into the final text.
func Join(lines []string) string {
	return strings.Join(lines, "")
}
