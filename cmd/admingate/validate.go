package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/admingate/config"
)

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

var skipDatabase bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file, check it for errors and report the result.

Unless --skip-database is given, the configured database is opened and
its resources decorated, so resource option errors surface here instead
of at boot.

Examples:
  admingate validate
  admingate validate --config /etc/admingate/config.yaml --skip-database`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&skipDatabase, "skip-database", false, "skip opening the database")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s\n\n", cfgFile)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("%s %v\n", crossMark, err)
		return fmt.Errorf("configuration is invalid")
	}
	fmt.Printf("%s Syntax and settings\n", checkMark)
	fmt.Printf("%s Root path %s\n", checkMark, cfg.Branding.RootPath)
	fmt.Printf("%s Resource overrides (%d)\n", checkMark, len(cfg.Resources))
	fmt.Printf("%s Admin accounts (%d)\n", checkMark, len(cfg.Auth.Accounts))

	if skipDatabase {
		fmt.Println("\nConfiguration is valid (database not checked).")
		return nil
	}

	reg, cleanup, err := buildRegistry(cfg)
	if err != nil {
		fmt.Printf("%s %v\n", crossMark, err)
		return fmt.Errorf("configuration is invalid")
	}
	defer cleanup()
	fmt.Printf("%s Resource options resolve (%d resources)\n", checkMark, len(reg.List()))

	fmt.Println("\nConfiguration is valid.")
	return nil
}
