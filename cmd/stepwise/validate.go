package main

import (
	"fmt"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check a manifest for consistency",
	Long:  `Reports duplicate keys, unknown requirements, invalid conditions and defaults that do not fit their question.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := cli.LoadManifest(cmd.Context(), manifestPath(args))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Manifest is valid! %d questions ✅\n", len(def.Questions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
