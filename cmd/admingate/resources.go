package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/artpar/admingate/adapters/memory"
	"github.com/artpar/admingate/adapters/sqlite"
	"github.com/artpar/admingate/config"
	"github.com/artpar/admingate/core/registry"
	"github.com/artpar/admingate/ports"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show the decorated resources",
	Long: `Introspect the configured database, apply the resource options
and print the result.

Useful to check what the admin panel will expose before serving it.

Examples:
  admingate resources
  admingate resources --config /etc/admingate/config.yaml`,
	RunE: runResources,
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg, cleanup, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resources := reg.List()
	if len(resources) == 0 {
		fmt.Println("No resources found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPARENT\tTITLE\tLIST PROPERTIES")
	for _, res := range resources {
		listProps, err := res.ListProperties()
		if err != nil {
			return err
		}
		names := make([]string, len(listProps))
		for i, p := range listProps {
			names[i] = p.Name()
		}
		title := "-"
		if tp := res.TitleProperty(); tp != nil {
			title = tp.Name()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			res.ID(), res.Name(), res.Parent().Name, title, strings.Join(names, ","))
	}
	return w.Flush()
}

// buildRegistry opens the configured database and decorates its
// resources, the same way serve does at boot.
func buildRegistry(cfg *config.Config) (*registry.Registry, func(), error) {
	cleanup := func() {}

	var adapter ports.Adapter
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open database: %w", err)
		}
		cleanup = func() { db.Close() }
		adapter = sqlite.NewAdapter(db, cfg.Database.Name)
	case "memory":
		demo, err := memory.NewDemoAdapter()
		if err != nil {
			return nil, cleanup, fmt.Errorf("seed demo data: %w", err)
		}
		adapter = demo
	default:
		return nil, cleanup, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	reg, err := registry.Build(context.Background(), adapter, cfg.Resources, registry.Branding{
		CompanyName: cfg.Branding.CompanyName,
		RootPath:    cfg.Branding.RootPath,
		Logo:        cfg.Branding.Logo,
	})
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("build registry: %w", err)
	}
	return reg, cleanup, nil
}
