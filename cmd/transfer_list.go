// Handles the "docstore transfer list" command

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var transferListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transfer logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(transferKeys...); err != nil {
			return err
		}
		runSample(cmd, "Failed to list transfers", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.ListTransfers(ctx)
		})
		return nil
	},
}

func init() {
	transferCmd.AddCommand(transferListCmd)
}
