package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"debloat/internal/adapters/adb"
	"debloat/internal/adapters/claudecli"
	"debloat/internal/adapters/sqlite"
	"debloat/internal/adapters/tui"
	"debloat/internal/application/stream"
	"debloat/internal/config"
)

func main() {
	catalog := sqlite.NewCatalog()
	if err := catalog.Open(""); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	defer catalog.Close()

	source := adb.NewSource(config.AdbPath(), adb.WithCatalog(catalog))
	ctrl := stream.NewController(source, stream.NewCache(config.CacheTTL()))
	advisor := claudecli.NewAdvisor(claudecli.WithModel(config.Model()))

	app := tui.NewApp(source, ctrl, advisor, catalog)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
