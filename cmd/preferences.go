// Handles the "docstore preferences" command. Holds the preference subcommands.

package cmd

import (
	"github.com/spf13/cobra"
)

var preferencesCmd = &cobra.Command{
	Use:   "preferences",
	Short: "Document store preferences",
}

func init() {
	rootCmd.AddCommand(preferencesCmd)
}
