package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/vintechs/portal/cmd/portal/cmd.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Vintechs hosting portal",
	Long: `portal serves the Vintechs landing page, the sign-in and sign-up
screens and the customer dashboard.

Available commands:
  serve      Start the HTTP server
  migrate    Apply the SurrealDB schema
  version    Print the build version

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
