package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"debloat/internal/domain"
	"debloat/internal/ports"
)

var adviceSave bool

var adviceCmd = &cobra.Command{
	Use:   "advice <package-id>...",
	Short: "Get AI removal advice for packages",
	Long: `Ask the AI advisor whether packages are safe to remove.

Requires the claude CLI on PATH.

Examples:
  debloat-cli advice com.vendor.weather
  debloat-cli advice com.vendor.weather com.vendor.mail --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !advisor.IsAvailable() {
			return fmt.Errorf("advisor backend not available (is the claude CLI installed?)")
		}

		pkgs := make([]domain.Package, 0, len(args))
		for _, id := range args {
			pkgs = append(pkgs, domain.Package{ID: id})
		}

		advice, err := advisor.Advise(pkgs)
		if err != nil {
			return err
		}

		for _, a := range advice {
			fmt.Printf("%s [%s]\n", a.PackageID, a.Category)
			if a.Summary != "" {
				fmt.Printf("  %s\n", a.Summary)
			}
			if a.Recommendation != "" {
				fmt.Printf("  Recommendation: %s\n", a.Recommendation)
			}
		}

		if adviceSave {
			entries := make([]ports.CatalogEntry, 0, len(advice))
			for _, a := range advice {
				entries = append(entries, ports.CatalogEntry{
					PackageID:   a.PackageID,
					Category:    a.Category,
					Description: a.Summary,
				})
			}
			if err := catalog.BulkUpsert(entries); err != nil {
				return fmt.Errorf("saving to catalog: %w", err)
			}
			fmt.Printf("\nSaved %d entries to the catalog\n", len(entries))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adviceCmd)
	adviceCmd.Flags().BoolVar(&adviceSave, "save", false, "persist the assessments to the local catalog")
}
