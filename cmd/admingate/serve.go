package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/admingate/bootstrap"
	"github.com/artpar/admingate/config"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin panel server",
	Long: `Start the admingate server.

The server will:
  - Load configuration from admingate.yaml (or --config)
  - Introspect the configured database
  - Decorate resources with your presentation options
  - Serve the admin JSON API

Environment variables override file configuration:
  ADMINGATE_DATABASE_DSN     - Database path
  ADMINGATE_SERVER_PORT      - Server port (default: 8080)
  ADMINGATE_SESSION_SECRET   - Session signing secret
  ADMINGATE_LOG_LEVEL        - Log level: debug, info, warn, error

Examples:
  admingate serve
  admingate serve --config /etc/admingate/config.yaml
  admingate serve --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgFile); err != nil {
		return fmt.Errorf("config file not found: %s", cfgFile)
	}

	var app *bootstrap.App
	var err error

	if hotReload {
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.Load(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}
		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
