// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "irismapper-admin",
	Short: "irismapper-admin is the login and user administration service for IrisMapper",
	Long: `irismapper-admin serves the IrisMapper login, profile and admin panel pages
and manages application accounts (creation and activation status).`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
