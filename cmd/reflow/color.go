package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// applyColorFlag sets fatih/color's global switch, used by version output.
func applyColorFlag(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, os.Stdout)
}
