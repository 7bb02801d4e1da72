package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"debloat/internal/domain"
	"debloat/internal/ports"
)

// RegisterWriteTools adds all mutating device tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, source ports.PackageSource, ctrl *SharedController, catalog ports.PackageCatalog) {
	s.AddTool(uninstallTool(), uninstallHandler(source, ctrl))
	s.AddTool(clearCacheTool(), clearCacheHandler(ctrl))
	s.AddTool(updateCatalogTool(), updateCatalogHandler(catalog))
}

// --- uninstall_package ---

func uninstallTool() mcp.Tool {
	return mcp.NewTool("uninstall_package",
		mcp.WithDescription("Uninstall a package from a device for the current user. The package can usually be restored with a factory reset or reinstall."),
		mcp.WithString("device_id",
			mcp.Description("Device serial (from list_devices)"),
			mcp.Required(),
		),
		mcp.WithString("package_id",
			mcp.Description("Package ID to remove (e.g. com.vendor.weather)"),
			mcp.Required(),
		),
	)
}

func uninstallHandler(source ports.PackageSource, ctrl *SharedController) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceID := req.GetString("device_id", "")
		packageID := req.GetString("package_id", "")
		if deviceID == "" || packageID == "" {
			return toolError(fmt.Errorf("device_id and package_id are required"))
		}

		if err := source.Uninstall(ctx, deviceID, packageID); err != nil {
			return toolError(err)
		}

		// The cached snapshot still contains the removed package; drop it so
		// the next list_packages re-enumerates.
		ctrl.ClearCache(deviceID)
		return mcp.NewToolResultText(fmt.Sprintf("Uninstalled %s from %s", packageID, deviceID)), nil
	}
}

// --- clear_cache ---

func clearCacheTool() mcp.Tool {
	return mcp.NewTool("clear_cache",
		mcp.WithDescription("Drop the cached package list for a device so the next list_packages re-enumerates."),
		mcp.WithString("device_id",
			mcp.Description("Device serial (from list_devices)"),
			mcp.Required(),
		),
	)
}

func clearCacheHandler(ctrl *SharedController) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceID := req.GetString("device_id", "")
		if deviceID == "" {
			return toolError(fmt.Errorf("device_id is required"))
		}
		ctrl.ClearCache(deviceID)
		return mcp.NewToolResultText(fmt.Sprintf("Cache cleared for %s", deviceID)), nil
	}
}

// --- update_catalog ---

func updateCatalogTool() mcp.Tool {
	return mcp.NewTool("update_catalog",
		mcp.WithDescription("Insert or replace a package classification in the local catalog."),
		mcp.WithString("package_id",
			mcp.Description("Package ID (e.g. com.vendor.weather)"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Human-readable package name"),
		),
		mcp.WithString("category",
			mcp.Description("Risk category: Safe, Caution, Expert, or Dangerous"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("What the package does"),
		),
	)
}

func updateCatalogHandler(catalog ports.PackageCatalog) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		packageID := req.GetString("package_id", "")
		if packageID == "" {
			return toolError(fmt.Errorf("package_id is required"))
		}

		raw := req.GetString("category", "")
		category := domain.ParseCategory(raw)
		if category == domain.CategoryUnknown {
			return toolError(fmt.Errorf("unknown category: %s", raw))
		}

		entry := ports.CatalogEntry{
			PackageID:   packageID,
			Name:        req.GetString("name", ""),
			Category:    category,
			Description: req.GetString("description", ""),
		}
		if err := catalog.BulkUpsert([]ports.CatalogEntry{entry}); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Catalog updated: %s [%s]", packageID, category)), nil
	}
}
