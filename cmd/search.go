// Handles the "docstore search" command

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var searchCmdConfig struct {
	query  string
	byHash bool
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search documents by text or by hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		runSample(cmd, "Failed to search for document", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.Search(ctx, searchCmdConfig.query, searchCmdConfig.byHash)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchCmdConfig.query, "query", "q", defaultSearchQuery, "text or document hash to search for")
	searchCmd.Flags().BoolVar(&searchCmdConfig.byHash, "by-hash", false, "treat the query as a document hash")
}
