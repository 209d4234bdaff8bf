package main

import (
	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Run the wizard described by a manifest",
	Long:  `Asks every visible question of the manifest and prints the answers as YAML (or JSON). Type :back to revisit the previous question and :exit to leave.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Path: manifestPath(args)}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.LogFormat, _ = cmd.Flags().GetString("log-format")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Set, _ = cmd.Flags().GetStringArray("set")
		opts.Suggest, _ = cmd.Flags().GetStringArray("suggest")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		opts.NoBanner, _ = cmd.Flags().GetBool("no-banner")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.Execute(sigCtx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON prompts and answers)")
	runCmd.Flags().StringArray("set", nil, "Answer a question up front (key=value); it is not asked")
	runCmd.Flags().StringArray("suggest", nil, "Pre-select an answer (key=value); it is still asked")
	runCmd.Flags().StringP("output", "o", "", "Output format: yaml or json")
	runCmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address while running")
	runCmd.Flags().Bool("no-banner", false, "Do not print the banner")

	// 'run' is the default when no command is given.
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
