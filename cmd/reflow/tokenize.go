package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reflow/internal/diagfmt"
	"reflow/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Show how a file is split into words and separators",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	addReflowFlags(tokenizeCmd)
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, _, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Inspect(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	printInspectionDiagnostics(cmd, result)

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Lines, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Lines)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Выводим диагностику в stderr, если есть
func printInspectionDiagnostics(cmd *cobra.Command, result *driver.Inspection) {
	if !result.Bag.HasWarnings() {
		return
	}
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	_ = diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
		Color:    useColor(cmd, os.Stderr),
		PathMode: diagfmt.PathModeRelative,
		Max:      maxDiagnostics,
	})
}
