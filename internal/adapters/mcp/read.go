package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"debloat/internal/domain"
	"debloat/internal/ports"
)

// RegisterReadTools adds all read-only device tools to the MCP server.
// The controller is shared across calls so repeated list_packages requests
// for the same device hit the result cache instead of the device.
func RegisterReadTools(s *server.MCPServer, source ports.PackageSource, ctrl *SharedController, advisor ports.Advisor) {
	s.AddTool(listDevicesTool(), listDevicesHandler(source))
	s.AddTool(listPackagesTool(), listPackagesHandler(ctrl))
	s.AddTool(packageAdviceTool(), packageAdviceHandler(advisor))
}

// --- list_devices ---

func listDevicesTool() mcp.Tool {
	return mcp.NewTool("list_devices",
		mcp.WithDescription("List attached devices with their serial, model, and connection state."),
	)
}

func listDevicesHandler(source ports.PackageSource) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		devices, err := source.Devices(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(devices) == 0 {
			return mcp.NewToolResultText("No devices attached."), nil
		}

		var sb strings.Builder
		for _, d := range devices {
			fmt.Fprintf(&sb, "%s  %s  %s\n", d.ID, d.Model, d.State)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_packages ---

func listPackagesTool() mcp.Tool {
	return mcp.NewTool("list_packages",
		mcp.WithDescription("List installed packages on a device. Results are cached briefly; set refresh to bypass the cache."),
		mcp.WithString("device_id",
			mcp.Description("Device serial (from list_devices)"),
			mcp.Required(),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring to match against package ID or name"),
		),
		mcp.WithString("category",
			mcp.Description("Filter by risk category: Safe, Caution, Expert, or Dangerous"),
		),
		mcp.WithBoolean("refresh",
			mcp.Description("Re-enumerate the device even when a cached result exists"),
		),
	)
}

func listPackagesHandler(ctrl *SharedController) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceID := req.GetString("device_id", "")
		if deviceID == "" {
			return toolError(fmt.Errorf("device_id is required"))
		}

		filter := domain.CategoryUnknown
		if raw := req.GetString("category", ""); raw != "" {
			filter = domain.ParseCategory(raw)
			if filter == domain.CategoryUnknown {
				return toolError(fmt.Errorf("unknown category: %s", raw))
			}
		}

		state, err := ctrl.List(ctx, deviceID, req.GetBool("refresh", false))
		if err != nil {
			return toolError(err)
		}
		if state.Err != "" {
			return toolError(fmt.Errorf("enumeration failed: %s", state.Err))
		}

		visible := domain.Compose(state.Packages, req.GetString("search", ""), filter)

		var sb strings.Builder
		origin := "device"
		if state.FromCache {
			origin = "cache"
		}
		fmt.Fprintf(&sb, "%d of %d packages (%s)\n", len(visible), len(state.Packages), origin)
		for _, p := range visible {
			fmt.Fprintf(&sb, "%-10s %s  %s\n", p.Category, p.ID, p.DisplayName())
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- package_advice ---

func packageAdviceTool() mcp.Tool {
	return mcp.NewTool("package_advice",
		mcp.WithDescription("Get an AI safety assessment for one or more packages: risk category, what the package does, and a removal recommendation."),
		mcp.WithString("package_ids",
			mcp.Description("Comma-separated package IDs (e.g. com.vendor.weather,com.vendor.mail)"),
			mcp.Required(),
		),
	)
}

func packageAdviceHandler(advisor ports.Advisor) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !advisor.IsAvailable() {
			return toolError(fmt.Errorf("advisor backend is not available"))
		}

		var pkgs []domain.Package
		for _, id := range strings.Split(req.GetString("package_ids", ""), ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				pkgs = append(pkgs, domain.Package{ID: id})
			}
		}
		if len(pkgs) == 0 {
			return toolError(fmt.Errorf("package_ids is required"))
		}

		advice, err := advisor.Advise(pkgs)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, a := range advice {
			fmt.Fprintf(&sb, "%s [%s]\n  %s\n  Recommendation: %s\n", a.PackageID, a.Category, a.Summary, a.Recommendation)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
