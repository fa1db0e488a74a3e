// Handles the "docstore hash" command. This command exists solely to contain
// the hash recalculation subcommands.

package cmd

import (
	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Document hash recalculation",
	Long:  `Ask the document store to recalculate stored document hashes.`,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
