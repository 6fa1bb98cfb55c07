package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reflow/internal/diagfmt"
	"reflow/internal/driver"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <file>",
	Short: "Show which line breaks are kept and the rule that decided",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	addReflowFlags(explainCmd)
	explainCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runExplain(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("explain failed: %w", err)
	}
	printInspectionDiagnostics(cmd, result)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		fmt.Fprintf(out, "%s: width %d\n", result.File.Path, result.Width)
		return diagfmt.FormatDecisionsPretty(out, result.Lines, result.Decisions, useColor(cmd, os.Stdout))
	case "json":
		return diagfmt.FormatDecisionsJSON(out, result.Lines, result.Decisions)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
