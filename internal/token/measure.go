package token

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Measure decides how the width of a word is counted.
type Measure uint8

const (
	// MeasureChars counts runes.
	MeasureChars Measure = iota
	// MeasureCells counts terminal cells (East Asian wide runes take two).
	MeasureCells
)

func (m Measure) String() string {
	switch m {
	case MeasureChars:
		return "chars"
	case MeasureCells:
		return "cells"
	default:
		return "unknown"
	}
}

// ParseMeasure converts a flag value to a Measure.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chars":
		return MeasureChars, nil
	case "cells":
		return MeasureCells, nil
	default:
		return MeasureChars, fmt.Errorf("invalid measure %q (expected chars|cells)", s)
	}
}

// Width returns the measured width of s.
func (m Measure) Width(s string) int {
	if m == MeasureCells {
		return runewidth.StringWidth(s)
	}
	return utf8.RuneCountInString(s)
}
