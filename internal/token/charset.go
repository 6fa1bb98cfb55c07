package token

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrBadCharList is returned when a character list entry is not one character.
var ErrBadCharList = errors.New("token: character list entries must be single characters")

// CharSet is an immutable set of runes.
type CharSet struct {
	runes []rune // sorted, unique
}

// NewCharSet builds a set from the given runes.
func NewCharSet(rs ...rune) CharSet {
	out := slices.Clone(rs)
	slices.Sort(out)
	return CharSet{runes: slices.Compact(out)}
}

// DefaultBreakChars returns the characters a word may be split after.
func DefaultBreakChars() CharSet {
	return NewCharSet('-', '/')
}

// DefaultStartChars returns the characters that mark an intentional line start.
func DefaultStartChars() CharSet {
	return NewCharSet(' ', '-', '*', '>', '\t')
}

// Has reports whether r is a member of the set.
func (s CharSet) Has(r rune) bool {
	_, ok := slices.BinarySearch(s.runes, r)
	return ok
}

// Len returns the number of runes in the set.
func (s CharSet) Len() int { return len(s.runes) }

// Runes returns a copy of the members in ascending order.
func (s CharSet) Runes() []rune { return slices.Clone(s.runes) }

// String renders the set as a quoted, comma separated list.
func (s CharSet) String() string {
	parts := make([]string, 0, len(s.runes))
	for _, r := range s.runes {
		parts = append(parts, fmt.Sprintf("%q", r))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseCharList converts user-supplied entries ("-", "/", "\t") into a set.
// The escapes \t, \s (space) and \\ are understood so that whitespace can be
// passed through shells and TOML without quoting tricks.
func ParseCharList(items []string) (CharSet, error) {
	rs := make([]rune, 0, len(items))
	for _, item := range items {
		r, err := parseChar(item)
		if err != nil {
			return CharSet{}, err
		}
		rs = append(rs, r)
	}
	return NewCharSet(rs...), nil
}

func parseChar(item string) (rune, error) {
	switch item {
	case `\t`:
		return '\t', nil
	case `\s`:
		return ' ', nil
	case `\\`:
		return '\\', nil
	}
	if utf8.RuneCountInString(item) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadCharList, item)
	}
	r, _ := utf8.DecodeRuneInString(item)
	if r == '\n' {
		return 0, fmt.Errorf("%w: newline is always a line boundary", ErrBadCharList)
	}
	return r, nil
}
