// Handles the "docstore document download" command

package cmd

import (
	"github.com/spf13/cobra"
)

var downloadCmdConfig struct {
	path   string
	output string
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download a document to a local file",
	Long: `Streams the document content into the output file, overwriting it if it
already exists. Nothing is printed on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		n, err := dsManager.Client.SaveDocument(cmd.Context(), downloadCmdConfig.path, downloadCmdConfig.output)
		if err != nil {
			printFailure(cmd.OutOrStdout(), "Failed to download document", err)
			return nil
		}
		dsManager.Logger.Infof("Saved %d bytes to %s", n, downloadCmdConfig.output)
		return nil
	},
}

func init() {
	documentCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadCmdConfig.path, "path", "p", defaultDocument, "document path in the store")
	downloadCmd.Flags().StringVarP(&downloadCmdConfig.output, "output", "o", defaultDownloadTarget, "local file to write")
}
