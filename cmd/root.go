// Package cmd implements the CLI commands for wikiplain using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagLogJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "wikiplain",
	Short: "wikiplain — convert Wikipedia articles into plaintext",
	Long: `wikiplain fetches Wikipedia articles through the MediaWiki API and converts
their wikitext into plaintext, or into Markdown, JSON, PDF or Embeddings.

Usage:
  wikiplain convert <url|links file> [flags]
  wikiplain harvest --lang <code> [flags]
  wikiplain serve [flags]

Settings are also read from WIKIPLAIN_* environment variables; flags win.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log as JSON instead of text")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the stderr logger selected by the persistent flags.
func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if flagVerbose {
		opts.Level = slog.LevelDebug
	}
	if flagLogJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
