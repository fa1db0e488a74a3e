// Handles the "docstore hash document" command

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var hashDocCmdConfig struct {
	path string
}

var hashDocCmd = &cobra.Command{
	Use:   "document",
	Short: "Recalculate the hash of a single document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		runSample(cmd, "Failed to calculate hash", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.CalculateHash(ctx, hashDocCmdConfig.path)
		})
		return nil
	},
}

func init() {
	hashCmd.AddCommand(hashDocCmd)

	hashDocCmd.Flags().StringVarP(&hashDocCmdConfig.path, "path", "p", defaultDocument, "document path in the store")
}
