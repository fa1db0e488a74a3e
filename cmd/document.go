// Handles the "docstore document" command. This command exists solely to
// contain the per-document subcommands (upload, download, etc..)

package cmd

import (
	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Document interaction",
	Long:  `Commands that act on a single document in the store.`,
}

func init() {
	rootCmd.AddCommand(documentCmd)
}
