// Handles the "docstore transfer" command. This command exists solely to
// contain the transfer subcommands.

package cmd

import (
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Document transfers between destinations",
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
