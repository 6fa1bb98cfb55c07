package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reflow/internal/config"
	"reflow/internal/driver"
	"reflow/internal/reflow"
	"reflow/internal/token"
)

// addReflowFlags registers the flags shared by wrap, tokenize and explain.
// Defaults match reflow.DefaultOptions; only flags the user changed override
// reflow.toml.
func addReflowFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("ncol", 0, "target line width (default: the longest input line)")
	f.StringSlice("breakchars", []string{"-", "/"}, `characters after which a word may be split (\t and \s for tab and space)`)
	f.StringSlice("startchars", []string{`\s`, "-", "*", ">", `\t`}, "characters that mark a line start as a deliberate break")
	f.BoolP("ignore-manual-breaks", "b", false, "refill every line break, even deliberate-looking ones")
	f.BoolP("remove-empty-lines", "r", false, "drop empty lines instead of keeping them as paragraph gaps")
	f.String("measure", "chars", "width measure (chars|cells)")
	f.String("reference-width", "target", "width used to judge whether a line was broken early (target|longest)")
	f.String("encoding", "utf-8", "encoding of input and output files")
}

// loadConfig finds reflow.toml unless --no-config is set. --config names a
// file explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	if skip, _ := pf.GetBool("no-config"); skip {
		return nil, nil
	}
	if path, _ := pf.GetString("config"); path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.Discover(wd)
	return cfg, err
}

// buildOptions layers defaults, reflow.toml and changed flags.
func buildOptions(cmd *cobra.Command) (driver.Options, *config.Config, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, nil, err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, nil, err
	}
	opts := driver.Options{
		Reflow:         reflow.DefaultOptions(),
		Suffix:         driver.DefaultSuffix,
		MaxDiagnostics: maxDiagnostics,
		Timings:        timings,
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return opts, nil, err
	}
	if err := cfg.Apply(&opts); err != nil {
		return opts, nil, err
	}

	f := cmd.Flags()
	w := &opts.Reflow
	if f.Changed("ncol") {
		n, _ := f.GetInt("ncol")
		if err := reflow.CheckWidth(n); err != nil {
			return opts, nil, fmt.Errorf("--ncol: %w", err)
		}
		w.Width = n
	}
	if f.Changed("breakchars") {
		list, _ := f.GetStringSlice("breakchars")
		if w.BreakChars, err = token.ParseCharList(list); err != nil {
			return opts, nil, fmt.Errorf("--breakchars: %w", err)
		}
	}
	if f.Changed("startchars") {
		list, _ := f.GetStringSlice("startchars")
		if w.StartChars, err = token.ParseCharList(list); err != nil {
			return opts, nil, fmt.Errorf("--startchars: %w", err)
		}
	}
	if f.Changed("ignore-manual-breaks") {
		ignore, _ := f.GetBool("ignore-manual-breaks")
		w.PreserveBreaks = !ignore
	}
	if f.Changed("remove-empty-lines") {
		remove, _ := f.GetBool("remove-empty-lines")
		w.PreserveEmptyLines = !remove
	}
	if f.Changed("measure") {
		s, _ := f.GetString("measure")
		if w.Measure, err = token.ParseMeasure(s); err != nil {
			return opts, nil, fmt.Errorf("--measure: %w", err)
		}
	}
	if f.Changed("reference-width") {
		s, _ := f.GetString("reference-width")
		if w.Reference, err = reflow.ParseReference(s); err != nil {
			return opts, nil, fmt.Errorf("--reference-width: %w", err)
		}
	}
	if f.Changed("encoding") {
		opts.Encoding, _ = f.GetString("encoding")
	}
	return opts, cfg, nil
}
