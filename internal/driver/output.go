package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OutputMode decides where reflowed text goes.
type OutputMode uint8

const (
	// OutputNew writes next to the input as <name><suffix><n>.<ext>.
	OutputNew OutputMode = iota
	// OutputInPlace rewrites changed inputs, keeping their permissions.
	OutputInPlace
	// OutputStdout returns the text in Result.Output.
	OutputStdout
	// OutputCheck only reports whether an input would change.
	OutputCheck
)

func (m OutputMode) String() string {
	switch m {
	case OutputNew:
		return "new"
	case OutputInPlace:
		return "inplace"
	case OutputStdout:
		return "stdout"
	case OutputCheck:
		return "check"
	default:
		return "unknown"
	}
}

// ParseOutputMode converts a flag value to an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "new":
		return OutputNew, nil
	case "inplace", "in-place":
		return OutputInPlace, nil
	case "stdout", "-":
		return OutputStdout, nil
	case "check":
		return OutputCheck, nil
	}
	return OutputNew, fmt.Errorf("invalid output mode %q (expected new|inplace|stdout|check)", s)
}

// DefaultSuffix separates the original name from the counter.
const DefaultSuffix = "_"

// outputCandidate returns the n-th candidate name for path.
func outputCandidate(path, suffix string, n int) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+suffix+strconv.Itoa(n)+ext)
}

// writeNew creates the first free candidate exclusively, so parallel workers
// never pick the same name. A candidate that could not be written in full is
// removed again.
func writeNew(path, suffix string, data []byte, perm fs.FileMode) (string, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	for n := 1; ; n++ {
		candidate := outputCandidate(path, suffix, n)
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if err := writeData(f, data); err != nil {
			_ = f.Close()
			_ = os.Remove(candidate)
			return "", err
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(candidate)
			return "", err
		}
		return candidate, nil
	}
}

// writeData is swapped in tests to simulate a failing disk.
var writeData = func(f *os.File, data []byte) error {
	_, err := f.Write(data)
	return err
}

// writeInPlace replaces path, keeping its permission bits.
func writeInPlace(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}
