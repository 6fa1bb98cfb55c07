// Package config loads reflow.toml and layers it over the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"reflow/internal/driver"
	"reflow/internal/reflow"
	"reflow/internal/source"
	"reflow/internal/token"
)

// FileName is the name searched for when walking up from a directory.
const FileName = "reflow.toml"

// Config is a parsed reflow.toml.
type Config struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	Wrap   WrapConfig   `toml:"wrap"`
	Output OutputConfig `toml:"output"`
	Run    RunConfig    `toml:"run"`

	meta toml.MetaData
}

type WrapConfig struct {
	Ncol               int      `toml:"ncol"`
	PreserveBreaks     bool     `toml:"preserve_breaks"`
	PreserveEmptyLines bool     `toml:"preserve_empty_lines"`
	BreakChars         []string `toml:"breakchars"`
	StartChars         []string `toml:"startchars"`
	Measure            string   `toml:"measure"`
	ReferenceWidth     string   `toml:"reference_width"`
	Encoding           string   `toml:"encoding"`
}

type OutputConfig struct {
	Mode   string `toml:"mode"`
	Suffix string `toml:"suffix"`
}

type RunConfig struct {
	Jobs       int      `toml:"jobs"`
	Cache      bool     `toml:"cache"`
	Extensions []string `toml:"extensions"`
}

// Find walks up from startDir looking for reflow.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest reflow.toml. ok is false when there is none.
func Discover(startDir string) (cfg *Config, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load parses and validates the file at path.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	cfg.meta = meta
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Has reports whether the file set the key, e.g. Has("wrap", "ncol").
func (c *Config) Has(key ...string) bool {
	return c != nil && c.meta.IsDefined(key...)
}

func (c *Config) validate() error {
	if c.Has("wrap", "ncol") {
		if err := reflow.CheckWidth(c.Wrap.Ncol); err != nil {
			return fmt.Errorf("[wrap].ncol: %w", err)
		}
	}
	if c.Has("wrap", "measure") {
		if _, err := token.ParseMeasure(c.Wrap.Measure); err != nil {
			return fmt.Errorf("[wrap].measure: %w", err)
		}
	}
	if c.Has("wrap", "reference_width") {
		if _, err := reflow.ParseReference(c.Wrap.ReferenceWidth); err != nil {
			return fmt.Errorf("[wrap].reference_width: %w", err)
		}
	}
	if c.Has("wrap", "encoding") {
		if _, _, err := source.LookupEncoding(c.Wrap.Encoding); err != nil {
			return fmt.Errorf("[wrap].encoding: %w", err)
		}
	}
	for _, key := range []string{"breakchars", "startchars"} {
		if !c.Has("wrap", key) {
			continue
		}
		list := c.Wrap.BreakChars
		if key == "startchars" {
			list = c.Wrap.StartChars
		}
		if _, err := token.ParseCharList(list); err != nil {
			return fmt.Errorf("[wrap].%s: %w", key, err)
		}
	}
	if c.Has("output", "mode") {
		if _, err := driver.ParseOutputMode(c.Output.Mode); err != nil {
			return fmt.Errorf("[output].mode: %w", err)
		}
	}
	if c.Has("run", "jobs") && c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must not be negative, got %d", c.Run.Jobs)
	}
	return nil
}

// Apply overrides opts with every key the file defines. A nil config leaves
// opts untouched. Values were validated by Load.
func (c *Config) Apply(opts *driver.Options) error {
	if c == nil {
		return nil
	}
	w := &opts.Reflow
	if c.Has("wrap", "ncol") {
		w.Width = c.Wrap.Ncol
	}
	if c.Has("wrap", "preserve_breaks") {
		w.PreserveBreaks = c.Wrap.PreserveBreaks
	}
	if c.Has("wrap", "preserve_empty_lines") {
		w.PreserveEmptyLines = c.Wrap.PreserveEmptyLines
	}
	var err error
	if c.Has("wrap", "breakchars") {
		if w.BreakChars, err = token.ParseCharList(c.Wrap.BreakChars); err != nil {
			return err
		}
	}
	if c.Has("wrap", "startchars") {
		if w.StartChars, err = token.ParseCharList(c.Wrap.StartChars); err != nil {
			return err
		}
	}
	if c.Has("wrap", "measure") {
		if w.Measure, err = token.ParseMeasure(c.Wrap.Measure); err != nil {
			return err
		}
	}
	if c.Has("wrap", "reference_width") {
		if w.Reference, err = reflow.ParseReference(c.Wrap.ReferenceWidth); err != nil {
			return err
		}
	}
	if c.Has("wrap", "encoding") {
		opts.Encoding = c.Wrap.Encoding
	}
	if c.Has("output", "mode") {
		if opts.Output, err = driver.ParseOutputMode(c.Output.Mode); err != nil {
			return err
		}
	}
	if c.Has("output", "suffix") {
		opts.Suffix = c.Output.Suffix
	}
	if c.Has("run", "jobs") {
		opts.Jobs = c.Run.Jobs
	}
	if c.Has("run", "extensions") {
		opts.Extensions = c.Run.Extensions
	}
	return nil
}

// CacheEnabled reports [run].cache.
func (c *Config) CacheEnabled() bool {
	return c.Has("run", "cache") && c.Run.Cache
}
