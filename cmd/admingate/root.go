package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "admingate",
	Short: "Auto-generated admin panel for your database",
	Long: `Admingate serves an admin panel generated from your database schema.

Point it at a database and it introspects the tables, decorates them
with your presentation options, and serves a JSON API the admin front
end renders.

Quick start:
  admingate serve       # Start the admin panel server

Management:
  admingate resources   # Show the decorated resources
  admingate validate    # Validate configuration
  admingate secret      # Generate a session secret
  admingate hash        # Hash an admin password`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "admingate.yaml", "config file path")
}
