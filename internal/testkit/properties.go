// Package testkit holds property checkers shared by the reflow tests.
package testkit

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"reflow/internal/lexer"
	"reflow/internal/source"
	"reflow/internal/token"
)

// Words returns the word texts of text as the tokenizer sees them with the
// given break characters: split on spaces, newlines and after break chars.
func Words(text string, breakChars token.CharSet) []string {
	lx := lexer.New(lexer.Options{BreakChars: breakChars})
	var out []string
	for _, l := range lx.Lines(source.VirtualLines(0, source.SplitLines(text))) {
		out = append(out, l.Words()...)
	}
	return out
}

// CheckWordsPreserved reports an error when out does not contain exactly the
// words of in, in the same order.
func CheckWordsPreserved(in, out string, breakChars token.CharSet) error {
	wi, wo := Words(in, breakChars), Words(out, breakChars)
	if slices.Equal(wi, wo) {
		return nil
	}
	for i := range min(len(wi), len(wo)) {
		if wi[i] != wo[i] {
			return fmt.Errorf("word %d differs: in %q, out %q", i, wi[i], wo[i])
		}
	}
	return fmt.Errorf("word count differs: in %d, out %d", len(wi), len(wo))
}

// CheckWidthBound reports lines wider than width. A line may only exceed the
// width when it holds a single word.
func CheckWidthBound(out string, width int, m token.Measure) error {
	for i, line := range source.SplitLines(out) {
		body := strings.TrimSuffix(line, "\n")
		if m.Width(body) <= width {
			continue
		}
		if strings.Contains(strings.TrimSpace(body), " ") {
			return fmt.Errorf("line %d is %d wide (limit %d): %q", i+1, m.Width(body), width, body)
		}
	}
	return nil
}

// CheckNoTrailingSpace reports lines ending in a space.
func CheckNoTrailingSpace(out string) error {
	for i, line := range source.SplitLines(out) {
		if strings.HasSuffix(strings.TrimSuffix(line, "\n"), " ") {
			return fmt.Errorf("line %d ends with a space: %q", i+1, line)
		}
	}
	return nil
}

// CheckTrailingNewline reports a mismatch in the final-newline condition.
// Empty output is accepted for empty input only.
func CheckTrailingNewline(in, out string) error {
	if out == "" {
		if in == "" {
			return nil
		}
		return errors.New("output is empty")
	}
	if strings.HasSuffix(in, "\n") != strings.HasSuffix(out, "\n") {
		return fmt.Errorf("final newline: in %t, out %t", strings.HasSuffix(in, "\n"), strings.HasSuffix(out, "\n"))
	}
	return nil
}

// Props bundles the knobs the checkers need.
type Props struct {
	Width      int
	BreakChars token.CharSet
	Measure    token.Measure
}

// CheckAll runs every checker and joins the failures.
func CheckAll(in, out string, p Props) error {
	return errors.Join(
		CheckWordsPreserved(in, out, p.BreakChars),
		CheckWidthBound(out, p.Width, p.Measure),
		CheckNoTrailingSpace(out),
		CheckTrailingNewline(in, out),
	)
}
