// Package cmd provides the command-line interface for stepsim.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stepsim",
	Short: "stepsim advances simulated worlds through time and events.",
	Long: `stepsim advances simulated worlds through time and events. ` +
		`Continuous motion is integrated between events, and every event ` +
		`fires at its exact time. Defaults can be set in a .env file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func loadEnv() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
