// Package main provides the bibtidy CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether reports use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibtidy [file...]",
	Short: "Tidy and normalize BibTeX files",
	Long: `bibtidy normalizes BibTeX bibliography files: consistent whitespace
and delimiters, optional duplicate merging, entry sorting, field
reordering, and LaTeX escaping of special characters.

The tidied text goes to stdout unless --modify rewrites the input
files in place. Reports are JSON by default for easy scripting; pass
--human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE:          runTidy,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable report output instead of JSON")
	rootCmd.Version = Version
}
