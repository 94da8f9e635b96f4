package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yad2watch/internal/catalog"
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the manufacturer and model id tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "manufacturers",
		Short: "List known manufacturers and their site ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, m := range catalog.Manufacturers() {
				fmt.Fprintf(out, "%4s  %s\n", m.ID, m.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "models <manufacturer>",
		Short: "List known models for a manufacturer (id or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := catalog.FindManufacturer(args[0])
			if !ok {
				return fmt.Errorf("unknown manufacturer %q", args[0])
			}
			models := catalog.Models(id)
			out := cmd.OutOrStdout()
			if len(models) == 0 {
				fmt.Fprintf(out, "No models in the table for %s; use raw model ids in filters.\n",
					catalog.ManufacturerName(id))
				return nil
			}
			for _, m := range models {
				fmt.Fprintf(out, "%6s  %s\n", m.ID, m.Name)
			}
			return nil
		},
	})

	return cmd
}
