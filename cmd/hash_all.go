// Handles the "docstore hash all" command

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var hashAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Recalculate the hash of every stored document",
	Long: `Resets and recalculates the hashes of all documents. The store answers
once the sync has been scheduled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		runSample(cmd, "Failed to calculate all hashes", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.SyncHashes(ctx)
		})
		return nil
	},
}

func init() {
	hashCmd.AddCommand(hashAllCmd)
}
