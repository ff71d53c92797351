package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dictproxy-cli",
	Short: "Look up dictionary definitions from the command line",
	Long: `dictproxy-cli fetches dictionary pages, extracts structured entries and
prints them as NDJSON, one record per word.

Usage:
  dictproxy-cli lookup <word>... [flags]
  dictproxy-cli lookup --input words.csv --output out.ndjson`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
