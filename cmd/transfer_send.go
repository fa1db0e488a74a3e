// Handles the "docstore transfer send" command

package cmd

import (
	"context"

	"github.com/kaleido-io/docstore/pkg/docstore"
	"github.com/spf13/cobra"
)

var transferSendCmdConfig struct {
	document string
}

var transferSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Transfer a document to another destination",
	Long: `Transfers a document from the configured "transfer.from" destination
to the configured "transfer.to" destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(append(transferKeys, "transfer.from", "transfer.to")...); err != nil {
			return err
		}
		req := docstore.TransferRequest{
			From:     dsManager.Config.FromDestination,
			To:       dsManager.Config.ToDestination,
			Document: transferSendCmdConfig.document,
		}
		runSample(cmd, "Failed to transfer document", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.Transfer(ctx, req)
		})
		return nil
	},
}

func init() {
	transferCmd.AddCommand(transferSendCmd)

	transferSendCmd.Flags().StringVarP(&transferSendCmdConfig.document, "document", "d", defaultTransferDoc, "document path in the store")
}
