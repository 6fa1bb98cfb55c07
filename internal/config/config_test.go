package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reflow/internal/driver"
	"reflow/internal/reflow"
	"reflow/internal/token"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[wrap]\nncol = 60\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if cfg.Wrap.Ncol != 60 {
		t.Fatalf("ncol = %d", cfg.Wrap.Ncol)
	}
	if cfg.Root != root {
		t.Fatalf("root = %q, want %q", cfg.Root, root)
	}
}

func TestApplyOnlyDefinedKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[wrap]
ncol = 72
preserve_empty_lines = false
breakchars = ["-"]
startchars = ["\\s", "*"]
measure = "cells"
reference_width = "longest"
encoding = "latin1"

[output]
mode = "inplace"

[run]
jobs = 3
cache = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts := driver.Options{Reflow: reflow.DefaultOptions(), Suffix: "-"}
	if err := cfg.Apply(&opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	w := opts.Reflow
	if w.Width != 72 || w.PreserveEmptyLines || !w.PreserveBreaks {
		t.Fatalf("wrap options not applied: %+v", w)
	}
	if w.BreakChars.Has('/') || !w.BreakChars.Has('-') {
		t.Fatalf("breakchars = %s", w.BreakChars)
	}
	if !w.StartChars.Has(' ') || !w.StartChars.Has('*') || w.StartChars.Has('>') {
		t.Fatalf("startchars = %s", w.StartChars)
	}
	if w.Measure != token.MeasureCells || w.Reference != reflow.RefLongest {
		t.Fatalf("measure=%s reference=%s", w.Measure, w.Reference)
	}
	if opts.Output != driver.OutputInPlace || opts.Jobs != 3 || opts.Encoding != "latin1" {
		t.Fatalf("driver options not applied: %+v", opts)
	}
	if opts.Suffix != "-" {
		t.Fatalf("undefined key overrode suffix: %q", opts.Suffix)
	}
	if !cfg.CacheEnabled() {
		t.Fatalf("cache should be enabled")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"zero width", "[wrap]\nncol = 0\n", "[wrap].ncol"},
		{"bad measure", "[wrap]\nmeasure = \"bytes\"\n", "[wrap].measure"},
		{"bad char", "[wrap]\nbreakchars = [\"ab\"]\n", "[wrap].breakchars"},
		{"bad mode", "[output]\nmode = \"print\"\n", "[output].mode"},
		{"negative jobs", "[run]\njobs = -1\n", "[run].jobs"},
		{"unknown key", "[wrap]\ncolumns = 10\n", "unknown keys"},
		{"syntax", "[wrap\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestNilConfigIsNoop(t *testing.T) {
	var cfg *Config
	opts := driver.Options{Reflow: reflow.DefaultOptions()}
	if err := cfg.Apply(&opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if opts.Reflow.Width != reflow.AutoWidth || cfg.CacheEnabled() {
		t.Fatalf("nil config changed options")
	}
}
