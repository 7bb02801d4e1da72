package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"debloat/internal/adapters/adb"
	"debloat/internal/adapters/claudecli"
	mcpadapter "debloat/internal/adapters/mcp"
	"debloat/internal/adapters/sqlite"
	"debloat/internal/application/stream"
	"debloat/internal/config"
)

func main() {
	adbFlag := flag.String("adb", config.AdbPath(), "path to the adb binary")
	dataFlag := flag.String("data-dir", "", "directory for the package catalog")
	flag.Parse()

	// Stdout carries the MCP protocol; everything else goes to stderr.
	log := logrus.New()
	log.SetOutput(os.Stderr)

	catalog := sqlite.NewCatalog()
	if err := catalog.Open(*dataFlag); err != nil {
		log.Fatalf("opening catalog: %v", err)
	}
	defer catalog.Close()

	source := adb.NewSource(*adbFlag, adb.WithCatalog(catalog), adb.WithLogger(log))
	ctrl := mcpadapter.NewSharedController(stream.NewController(source, stream.NewCache(config.CacheTTL())))
	advisor := claudecli.NewAdvisor(claudecli.WithModel(config.Model()))

	mcpServer := server.NewMCPServer(
		"debloat-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, source, ctrl, advisor)
	mcpadapter.RegisterWriteTools(mcpServer, source, ctrl, catalog)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("debloat-mcp: %v", err)
	}
}
