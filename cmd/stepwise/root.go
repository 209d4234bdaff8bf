package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "stepwise",
	Short:         "Stepwise asks the questions of a manifest one step at a time",
	Long:          `Stepwise turns a YAML manifest, or a directory of markdown question documents, into an interactive wizard with branching, back navigation and step counters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log wizard events to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// manifestPath returns the first argument, defaulting to the current directory.
func manifestPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
