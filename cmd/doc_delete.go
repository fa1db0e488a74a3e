// The 'docstore document delete' command. Nothing is printed on success.

package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmdConfig struct {
	path string
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a document from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		if _, err := dsManager.Client.DeleteDocument(cmd.Context(), deleteCmdConfig.path); err != nil {
			printFailure(cmd.OutOrStdout(), "Failed to delete document", err)
		}
		return nil
	},
}

func init() {
	documentCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVarP(&deleteCmdConfig.path, "path", "p", defaultDocument, "document path in the store")
}
