package reflow

import (
	"errors"
	"fmt"
	"strings"

	"reflow/internal/token"
)

var (
	// ErrEmptyInput is returned when there is nothing to measure the width from.
	ErrEmptyInput = errors.New("reflow: empty input and no width given")
	// ErrInvalidWidth is returned for a width that is not positive.
	ErrInvalidWidth = errors.New("reflow: width must be positive")
)

// AutoWidth asks Run to use the longest input line as the target width.
const AutoWidth = 0

// Reference selects the width rule 5 of the classifier compares against.
type Reference uint8

const (
	// RefTarget compares against the target width.
	RefTarget Reference = iota
	// RefLongest compares against the longest input line.
	RefLongest
)

func (r Reference) String() string {
	switch r {
	case RefTarget:
		return "target"
	case RefLongest:
		return "longest"
	default:
		return "unknown"
	}
}

// ParseReference converts a flag value to a Reference.
func ParseReference(s string) (Reference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "target":
		return RefTarget, nil
	case "longest":
		return RefLongest, nil
	}
	return RefTarget, fmt.Errorf("invalid reference width %q (expected target|longest)", s)
}

// Options configures one reflow run.
type Options struct {
	// Width is the target line width; AutoWidth means the longest input line.
	Width              int
	PreserveBreaks     bool
	PreserveEmptyLines bool
	BreakChars         token.CharSet
	StartChars         token.CharSet
	Measure            token.Measure
	Reference          Reference
}

// DefaultOptions returns the stock configuration. Each call returns fresh sets.
func DefaultOptions() Options {
	return Options{
		Width:              AutoWidth,
		PreserveBreaks:     true,
		PreserveEmptyLines: true,
		BreakChars:         token.DefaultBreakChars(),
		StartChars:         token.DefaultStartChars(),
		Measure:            token.MeasureChars,
		Reference:          RefTarget,
	}
}

// CheckWidth validates a width the user gave explicitly.
func CheckWidth(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, n)
	}
	return nil
}

// Fingerprint is a stable text form of the options, used as part of cache keys.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("w=%d;pb=%t;pe=%t;bc=%s;sc=%s;m=%s;ref=%s",
		o.Width, o.PreserveBreaks, o.PreserveEmptyLines,
		o.BreakChars, o.StartChars, o.Measure, o.Reference)
}
