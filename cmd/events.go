// Handles the "docstore events" command

package cmd

import (
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print document store events as they arrive",
	Long: `Opens one event subscription and prints a line per connection, document
sent, document received and transfer acknowledgement event. Runs until
interrupted or until the connection ends; it never reconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require("api.socket", "credentials.user", "credentials.password"); err != nil {
			return err
		}
		// Failures are already printed by the connect_error/error handlers
		err := dsManager.Subscriber().PrintTo(cmd.OutOrStdout()).Run(cmd.Context())
		if err != nil {
			dsManager.Logger.Debugf("subscription ended: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
