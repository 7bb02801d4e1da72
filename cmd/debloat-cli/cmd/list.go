package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"debloat/internal/domain"
)

var (
	listSearch   string
	listCategory string
	listRefresh  bool
)

var listCmd = &cobra.Command{
	Use:   "list <device-id>",
	Short: "List packages installed on a device",
	Long: `List packages installed on a device, with their risk category.

Results are cached briefly; pass --refresh to re-enumerate.

Examples:
  debloat-cli list emulator-5554
  debloat-cli list emulator-5554 --search facebook
  debloat-cli list emulator-5554 --category Safe`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID := args[0]

		filter := domain.CategoryUnknown
		if listCategory != "" {
			filter = domain.ParseCategory(listCategory)
			if filter == domain.CategoryUnknown {
				return fmt.Errorf("unknown category: %s", listCategory)
			}
		}

		ctrl.SetDevice(deviceID)
		token, ch, err := ctrl.Start(context.Background(), deviceID, listRefresh)
		if err != nil {
			return err
		}

		state := ctrl.State()
		if ch != nil {
			state = ctrl.Drain(token, ch)
		}
		if state.Err != "" {
			return fmt.Errorf("enumeration failed: %s", state.Err)
		}

		visible := domain.Compose(state.Packages, listSearch, filter)
		for _, p := range visible {
			fmt.Printf("%-10s %s\n", p.Category, p.ID)
		}

		origin := "device"
		if state.FromCache {
			origin = "cache"
		}
		fmt.Printf("\n%d of %d packages (%s)\n", len(visible), len(state.Packages), origin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by substring of ID or name")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by risk category")
	listCmd.Flags().BoolVarP(&listRefresh, "refresh", "r", false, "re-enumerate even when a cached result exists")
}
