package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List attached devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := source.Devices(context.Background())
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			fmt.Println("No devices attached")
			return nil
		}

		for _, d := range devices {
			fmt.Printf("%-24s %-20s %s\n", d.ID, d.Model, d.State)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
