package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	herdlib "github.com/herdstore/herdstore/clients/library"
)

// LoadConfig reads the client config, writing a default one on first run so
// the MCP server can start against a local gateway out of the box.
func LoadConfig(path string) (*herdlib.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaultConfig := herdlib.DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		data, err := yaml.Marshal(defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		return defaultConfig, nil
	}

	return herdlib.LoadConfig(path)
}

func addTools(s *server.MCPServer, client *herdlib.HerdClient) {
	createTool := mcp.NewTool("vdi_create",
		mcp.WithDescription("Create a new virtual disk image"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the VDI to create"),
		),
		mcp.WithNumber("size",
			mcp.Required(),
			mcp.Description("Size of the VDI in bytes"),
		),
	)
	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		size, err := request.RequireFloat("size")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.CreateVDI(ctx, name, uint64(size)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create VDI: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created VDI %s (%d bytes)", name, uint64(size))), nil
	})

	snapshotTool := mcp.NewTool("vdi_snapshot",
		mcp.WithDescription("Freeze the live head of a VDI under a snapshot tag"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the VDI to snapshot"),
		),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Snapshot tag to assign"),
		),
	)
	s.AddTool(snapshotTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tag, err := request.RequireString("tag")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.SnapshotVDI(ctx, name, tag); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to snapshot VDI: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Snapshotted %s as %s", name, tag)), nil
	})

	cloneTool := mcp.NewTool("vdi_clone",
		mcp.WithDescription("Clone a tagged snapshot into a new writable VDI"),
		mcp.WithString("src",
			mcp.Required(),
			mcp.Description("Source VDI name"),
		),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Source snapshot tag"),
		),
		mcp.WithString("dst",
			mcp.Required(),
			mcp.Description("Destination VDI name"),
		),
	)
	s.AddTool(cloneTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := request.RequireString("src")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tag, err := request.RequireString("tag")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dst, err := request.RequireString("dst")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.CloneVDI(ctx, src, tag, dst); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to clone VDI: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Cloned %s:%s into %s", src, tag, dst)), nil
	})
}

func main() {
	configPath := os.Getenv("HERDSTORE_MCP_CONFIG")
	if configPath == "" {
		home, _ := os.UserHomeDir()
		configPath = filepath.Join(home, ".herdstore", "mcp.yaml")
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcp: %v\n", err)
		os.Exit(1)
	}

	client, err := herdlib.NewHerdClient(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcp: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	s := server.NewMCPServer(
		"herdstore",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	addTools(s, client)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "mcp: server error: %v\n", err)
	}
}
