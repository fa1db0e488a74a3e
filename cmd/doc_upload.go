// Handles the "docstore document upload" command

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var uploadCmdConfig struct {
	source string
	path   string
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a local file as a document",
	Long: `Sends the local file as a multipart form (field "document") and stores
it under the given path, replacing any existing document there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		runSample(cmd, "Failed to upload document", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.UploadFile(ctx, uploadCmdConfig.path, uploadCmdConfig.source)
		})
		return nil
	},
}

func init() {
	documentCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadCmdConfig.source, "source", "s", defaultUploadSource, "local file to upload")
	uploadCmd.Flags().StringVarP(&uploadCmdConfig.path, "path", "p", defaultDocument, "document path in the store")
}
