package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"debloat/internal/domain"
	"debloat/internal/ports"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local package classification catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <package-id>",
	Short: "Show the catalog entry for a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Printf("%s is not in the catalog\n", args[0])
			return nil
		}

		fmt.Printf("%s [%s]\n", entry.PackageID, entry.Category)
		if entry.Name != "" {
			fmt.Printf("  Name: %s\n", entry.Name)
		}
		if entry.Description != "" {
			fmt.Printf("  %s\n", entry.Description)
		}
		return nil
	},
}

var catalogSetCmd = &cobra.Command{
	Use:   "set <package-id> <category>",
	Short: "Set the risk category for a package",
	Long: `Set the risk category for a package in the local catalog.

Category is one of: Safe, Caution, Expert, Dangerous.

Examples:
  debloat-cli catalog set com.vendor.weather Safe
  debloat-cli catalog set com.android.systemui Dangerous`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := domain.ParseCategory(args[1])
		if category == domain.CategoryUnknown {
			return fmt.Errorf("unknown category: %s", args[1])
		}

		entry := ports.CatalogEntry{PackageID: args[0], Category: category}
		if existing, err := catalog.Lookup(args[0]); err == nil && existing != nil {
			entry.Name = existing.Name
			entry.Description = existing.Description
		}

		if err := catalog.BulkUpsert([]ports.CatalogEntry{entry}); err != nil {
			return err
		}
		fmt.Printf("%s set to %s\n", args[0], category)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogSetCmd)
}
