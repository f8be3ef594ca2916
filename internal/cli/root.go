// Package cli implements storectl, the maintenance tool for the storefront dataset.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/store"
	"storefront/internal/substrate"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver string
	Key    string
}

// NewRootCommand creates the root command for storectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storectl",
		Short: "Maintain the storefront dataset",
		Long:  "Seed, reset and export the storefront dataset on any configured substrate.",
	}

	// Global flags; empty values fall back to STORE_DRIVER and STORE_KEY.
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "substrate driver (memory|file|redis|mysql|sqlite|postgres|s3)")
	cmd.PersistentFlags().StringVar(&opts.Key, "key", "", "dataset key")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// openStore opens the dataset selected by configuration and flags. Opening
// seeds a missing or unreadable dataset.
func openStore(ctx context.Context, opts *RootOptions) (*store.Store, func() error, error) {
	cfg := config.Load()
	if opts.Driver != "" {
		cfg.StoreDriver = opts.Driver
	}
	if opts.Key != "" {
		cfg.StoreKey = opts.Key
	}

	sub, err := substrate.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open substrate: %w", err)
	}
	st, err := store.Open(ctx, sub, cfg.StoreKey)
	if err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, sub.Close, nil
}
