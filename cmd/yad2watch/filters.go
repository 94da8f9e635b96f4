package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"yad2watch/internal/catalog"
	"yad2watch/internal/config"
	"yad2watch/internal/model"
)

// NewFiltersCmd creates the filters command group.
func NewFiltersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Manage the monitored search filters",
	}
	cmd.AddCommand(newFiltersListCmd())
	cmd.AddCommand(newFiltersAddCmd())
	cmd.AddCommand(newFiltersRemoveCmd())
	return cmd
}

func filtersPath() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.FiltersFile, nil
}

func newFiltersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := filtersPath()
			if err != nil {
				return err
			}
			filters, err := config.LoadFilters(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(filters) == 0 {
				fmt.Fprintln(out, "No filters configured. Use 'yad2watch filters add' to create one.")
				return nil
			}
			for _, f := range filters {
				fmt.Fprintf(out, "%s\n", f.Name)
				keys := make([]string, 0, len(f.Params))
				for k := range f.Params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					v := f.Params[k]
					if k == "manufacturer" {
						v = fmt.Sprintf("%s (%s)", v, catalog.ManufacturerName(v))
					}
					fmt.Fprintf(out, "  %s: %s\n", k, v)
				}
			}
			return nil
		},
	}
}

func newFiltersAddCmd() *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a filter",
		Long: `Add a filter by name with search parameters given as key=value pairs.
Manufacturer and model may be names (English or Hebrew) or numeric site
ids; names are resolved through the built-in catalog. Unknown parameter
keys are passed to the site untouched.

Example:
  yad2watch filters add seat-ibiza -p manufacturer=Seat -p model=Ibiza \
    -p year=2012-2016 -p km=1-100000`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			flt := model.Filter{Name: args[0], Params: make(map[string]string, len(params))}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok || k == "" {
					return fmt.Errorf("parameter %q is not key=value", p)
				}
				flt.Params[k] = v
			}
			if err := config.ResolveNames(&flt); err != nil {
				return err
			}

			path, err := filtersPath()
			if err != nil {
				return err
			}
			filters, err := config.LoadFilters(path)
			if err != nil {
				return err
			}
			for _, f := range filters {
				if f.Name == flt.Name {
					return fmt.Errorf("filter %q already exists", flt.Name)
				}
			}
			return config.SaveFilters(path, append(filters, flt))
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Search parameter as key=value (repeatable)")
	return cmd
}

func newFiltersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a filter by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := filtersPath()
			if err != nil {
				return err
			}
			filters, err := config.LoadFilters(path)
			if err != nil {
				return err
			}
			kept := filters[:0]
			for _, f := range filters {
				if f.Name != args[0] {
					kept = append(kept, f)
				}
			}
			if len(kept) == len(filters) {
				return fmt.Errorf("filter %q not found", args[0])
			}
			return config.SaveFilters(path, kept)
		},
	}
}
