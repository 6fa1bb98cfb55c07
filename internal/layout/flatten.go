package layout

import (
	"reflow/internal/classify"
	"reflow/internal/source"
	"reflow/internal/token"
)

// Flatten concatenates the tokens of all lines, inserting a hard break after
// every manual boundary. Empty lines carry their own hard break and stay on a
// line of their own even when the boundary before them is soft. The stream
// always ends with a hard break.
func Flatten(lines []token.Line, ds []classify.Decision) []token.Token {
	size := len(lines)
	for _, l := range lines {
		size += len(l.Tokens)
	}
	out := make([]token.Token, 0, size+1)

	for i, line := range lines {
		out = append(out, line.Tokens...)
		if line.IsEmpty() {
			continue
		}
		manual := i < len(ds) && ds[i].Manual
		nextEmpty := i+1 < len(lines) && lines[i+1].IsEmpty()
		if manual || nextEmpty {
			out = append(out, token.HardBreak(endOf(line)))
		}
	}

	if len(out) == 0 || !out[len(out)-1].IsHardBreak() {
		var sp source.Span
		if len(lines) > 0 {
			sp = endOf(lines[len(lines)-1])
		}
		out = append(out, token.HardBreak(sp))
	}
	return out
}

func endOf(l token.Line) source.Span {
	return source.Span{File: l.Span.File, Start: l.Span.End, End: l.Span.End}
}
