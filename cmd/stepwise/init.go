package main

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/manifest"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter manifest directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := manifestPath(args)
		if err := manifest.SaveDir(cmd.Context(), dir, manifest.Starter()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), ">>> Starter questions written to %s. Try: stepwise run %s\n", dir, dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
