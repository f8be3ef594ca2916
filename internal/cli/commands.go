package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/model"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the dataset if it is missing",
		Long: `Open the dataset, writing the initial users, catalog and categories when
the key is missing or unreadable. An existing dataset is left untouched.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := openStore(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer closeFn()
			printSummary(cmd.OutOrStdout(), st.Key(), st.Export())
			return nil
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "reset",
		Short:        "Replace the dataset with the initial seed",
		Long:         "Discard all users, products, categories and orders and write the initial seed.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset discards every order and user; pass --force to continue")
			}
			st, closeFn, err := openStore(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := st.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			printSummary(cmd.OutOrStdout(), st.Key(), st.Export())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm the reset")
	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Write the dataset as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := openStore(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer closeFn()

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(st.Export())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	return cmd
}

func printSummary(w io.Writer, key string, st model.State) {
	fmt.Fprintf(w, "%s: %d users, %d products, %d categories, %d orders\n",
		key, len(st.Users), len(st.Products), len(st.Categories), len(st.Orders))
}
