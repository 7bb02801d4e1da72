package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <device-id> <package-id>...",
	Short: "Uninstall packages from a device",
	Long: `Uninstall one or more packages from a device for the current user.

Removal is per-user: the package stays in the system image and comes back
on a factory reset.

Examples:
  debloat-cli uninstall emulator-5554 com.vendor.weather
  debloat-cli uninstall emulator-5554 com.vendor.weather com.vendor.mail -y`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID := args[0]
		packageIDs := args[1:]

		if !uninstallYes {
			fmt.Printf("Remove %d package(s) from %s? [y/N] ", len(packageIDs), deviceID)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		failed := 0
		for _, id := range packageIDs {
			if err := source.Uninstall(context.Background(), deviceID, id); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
				failed++
				continue
			}
			fmt.Printf("Removed %s\n", id)
		}

		ctrl.ClearCache(deviceID)

		if failed > 0 {
			return fmt.Errorf("%d of %d packages failed", failed, len(packageIDs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip the confirmation prompt")
}
