package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"reflow/internal/diagfmt"
	"reflow/internal/driver"
	"reflow/internal/observ"
	"reflow/internal/reflow"
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [flags] <path> [path...]",
	Short: "Re-wrap text files to a target width",
	Long: `wrap re-wraps the given files; directories are walked recursively.
By default the result is written next to each input as <name>_<n>.<ext>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrap,
}

func init() {
	addReflowFlags(wrapCmd)
	f := wrapCmd.Flags()
	f.String("output", "new", "where results go (new|inplace|stdout|check)")
	f.String("suffix", driver.DefaultSuffix, "separator between the name and the counter in new mode")
	f.StringSlice("ext", driver.DefaultExtensions, "extensions collected from directories")
	f.Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	f.Bool("cache", false, "reuse results cached on disk")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.String("format", "text", "report format (text|json)")
}

func runWrap(cmd *cobra.Command, args []string) error {
	opts, cfg, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("output") {
		s, _ := f.GetString("output")
		if opts.Output, err = driver.ParseOutputMode(s); err != nil {
			return err
		}
	}
	if f.Changed("suffix") {
		opts.Suffix, _ = f.GetString("suffix")
	}
	if f.Changed("ext") {
		opts.Extensions, _ = f.GetStringSlice("ext")
	}
	if f.Changed("jobs") {
		if opts.Jobs, _ = f.GetInt("jobs"); opts.Jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
	}
	useCache := cfg.CacheEnabled()
	if f.Changed("cache") {
		useCache, _ = f.GetBool("cache")
	}
	if useCache {
		cache, cerr := driver.OpenDiskCache("reflow")
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "reflow: cache disabled: %v\n", cerr)
		} else {
			opts.Cache = cache
		}
	}

	outputFormat, _ := f.GetString("format")
	switch outputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("wrap: unsupported output format %q", outputFormat)
	}
	uiValue, _ := f.GetString("ui")
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var results []driver.Result
	var runErr error
	if !quiet && outputFormat == "text" && opts.Output != driver.OutputStdout && shouldUseTUI(mode) {
		results, runErr = runReflowWithUI(cmd.Context(), "reflow", args, opts)
	} else {
		results, runErr = driver.ReflowPaths(cmd.Context(), args, opts)
	}
	if runErr != nil && !errors.Is(runErr, driver.ErrNoInputs) {
		return runErr
	}

	var hasErrors, hasChanges bool
	for i := range results {
		hasErrors = hasErrors || results[i].Failed()
		hasChanges = hasChanges || results[i].Changed
	}

	switch outputFormat {
	case "json":
		if err := renderWrapJSON(cmd.OutOrStdout(), results, opts); err != nil {
			return err
		}
	default:
		renderWrapText(cmd, results, opts, quiet)
	}

	if runErr != nil {
		return runErr
	}
	if hasErrors {
		return fmt.Errorf("wrap: failed to reflow some files")
	}
	if opts.Output == driver.OutputCheck && hasChanges {
		return errSilent
	}
	return nil
}

func renderWrapText(cmd *cobra.Command, results []driver.Result, opts driver.Options, quiet bool) {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	colored := useColor(cmd, os.Stderr)

	var reports []observ.Report
	for i := range results {
		res := &results[i]
		if res.Bag.Len() > 0 && (!quiet || res.Bag.HasErrors()) {
			err := diagfmt.Pretty(stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     colored,
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: opts.Timings,
				Max:       opts.MaxDiagnostics,
			})
			if err != nil {
				panic(err)
			}
		}
		if res.Err != nil {
			fmt.Fprintf(stderr, "reflow: %s: %v\n", res.Path, res.Err)
			continue
		}
		reports = append(reports, res.Timing)

		switch opts.Output {
		case driver.OutputStdout:
			_, _ = stdout.Write(res.Output)
		case driver.OutputCheck:
			if res.Changed && !quiet {
				fmt.Fprintln(stdout, res.Path)
			}
		case driver.OutputInPlace:
			if res.Changed && !quiet {
				fmt.Fprintf(stdout, "reflowed %s\n", res.Path)
			}
		default:
			if !quiet {
				fmt.Fprintf(stdout, "%s -> %s\n", res.Path, res.OutputPath)
			}
		}
	}

	if opts.Timings && len(reports) > 0 {
		if err := observ.Aggregate(reports...).WriteSummary(stderr); err != nil {
			panic(err)
		}
	}
}

type wrapResultJSON struct {
	Path        string                     `json:"path"`
	OutputPath  string                     `json:"output_path,omitempty"`
	Changed     bool                       `json:"changed"`
	Cached      bool                       `json:"cached,omitempty"`
	Width       int                        `json:"width,omitempty"`
	Stats       *reflow.Stats              `json:"stats,omitempty"`
	Output      string                     `json:"output,omitempty"`
	Error       string                     `json:"error,omitempty"`
	Diagnostics *diagfmt.DiagnosticsOutput `json:"diagnostics,omitempty"`
	Timing      *observ.Report             `json:"timing,omitempty"`
}

type wrapOutputJSON struct {
	Mode    string           `json:"mode"`
	Results []wrapResultJSON `json:"results"`
}

func renderWrapJSON(w io.Writer, results []driver.Result, opts driver.Options) error {
	payload := wrapOutputJSON{Mode: opts.Output.String(), Results: make([]wrapResultJSON, 0, len(results))}
	for i := range results {
		res := &results[i]
		jr := wrapResultJSON{
			Path:       res.Path,
			OutputPath: res.OutputPath,
			Changed:    res.Changed,
			Cached:     res.Cached,
			Width:      res.Width,
			Output:     string(res.Output),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			stats := res.Stats
			jr.Stats = &stats
		}
		if res.Bag.Len() > 0 {
			out := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeRelative,
				IncludeNotes:     true,
				Max:              opts.MaxDiagnostics,
			})
			jr.Diagnostics = &out
		}
		if opts.Timings && res.Err == nil {
			timing := res.Timing
			jr.Timing = &timing
		}
		payload.Results = append(payload.Results, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
