// Handles the "docstore preferences set" command

package cmd

import (
	"context"
	"strings"

	"github.com/kaleido-io/docstore/pkg/docstore"
	"github.com/spf13/cobra"
)

var prefSetCmdConfig struct {
	key   string
	value string
}

var prefSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a preference",
	Long: `Sets one preference. The default is the path template for received
documents; its ${...} placeholders are sent as literal text, they are not
filled in by this command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dsManager.Require(documentKeys...); err != nil {
			return err
		}
		if strings.Contains(prefSetCmdConfig.value, "${") {
			dsManager.Logger.Warnf("Preference value contains unsubstituted placeholders: %s", prefSetCmdConfig.value)
		}
		pref := docstore.Preference{Key: prefSetCmdConfig.key, Value: prefSetCmdConfig.value}
		runSample(cmd, "Failed to set preference", func(ctx context.Context) ([]byte, error) {
			return dsManager.Client.SetPreference(ctx, pref)
		})
		return nil
	},
}

func init() {
	preferencesCmd.AddCommand(prefSetCmd)

	prefSetCmd.Flags().StringVarP(&prefSetCmdConfig.key, "key", "k", defaultPreferenceKey, "preference name")
	prefSetCmd.Flags().StringVarP(&prefSetCmdConfig.value, "value", "v", defaultPreferenceValue, "preference value")
}
