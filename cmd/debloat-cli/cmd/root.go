package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"debloat/internal/adapters/adb"
	"debloat/internal/adapters/claudecli"
	"debloat/internal/adapters/sqlite"
	"debloat/internal/application/stream"
	"debloat/internal/config"
	"debloat/internal/ports"
)

var (
	adbPath string
	dataDir string

	source  ports.PackageSource
	catalog *sqlite.Catalog
	ctrl    *stream.Controller
	advisor ports.Advisor
)

var rootCmd = &cobra.Command{
	Use:   "debloat-cli",
	Short: "CLI for removing preinstalled packages from attached devices",
	Long: `debloat-cli enumerates, classifies, and removes packages on devices
attached over adb.

It provides commands to list devices and packages, get AI removal advice,
uninstall packages, and manage the local classification catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		catalog = sqlite.NewCatalog()
		if err := catalog.Open(dataDir); err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		source = adb.NewSource(adbPath, adb.WithCatalog(catalog))
		ctrl = stream.NewController(source, stream.NewCache(config.CacheTTL()))
		advisor = claudecli.NewAdvisor(claudecli.WithModel(config.Model()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if catalog != nil {
			catalog.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&adbPath, "adb", "a", config.AdbPath(), "path to the adb binary")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the package catalog (defaults to the user data dir)")
}
