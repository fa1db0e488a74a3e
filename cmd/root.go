// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/kaleido-io/docstore/pkg/dsmgr"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgFile string
var logLevel string

var dsManager *dsmgr.Manager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docstore",
	Short: "Document store API samples",
	Long: `Each subcommand issues a single request against the document store
(or opens a single event subscription) and prints the raw response or an
error line. Endpoints and app credentials come from the config file or
DOCSTORE_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrap(err, "Invalid log level")
		}
		logger := logrus.New()
		logger.SetLevel(level)

		mgrArgs := map[string]interface{}{"logger": logger}
		if cfgFile != "" {
			mgrArgs["config-file"] = cfgFile
		}

		dsManager, err = dsmgr.NewManager(mgrArgs)
		if err != nil {
			return errors.Wrap(err, "Failed to initialize docstore manager")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if dsManager == nil || dsManager.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			dsManager.Logger.Error(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/docstore.yaml, then ~/.docstore/docstore.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
}
