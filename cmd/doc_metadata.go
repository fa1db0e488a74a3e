// Handles the "docstore document metadata" command

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var metadataCmdConfig struct {
	path string
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Show document details without downloading it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		runSample(cmd, "Failed to browse documents", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.Metadata(ctx, metadataCmdConfig.path)
		})
		return nil
	},
}

func init() {
	documentCmd.AddCommand(metadataCmd)

	metadataCmd.Flags().StringVarP(&metadataCmdConfig.path, "path", "p", defaultDocument, "document path in the store")
}
