package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/aroussi/fragsim/internal/export"
	"github.com/aroussi/fragsim/pkg/fragment"
)

// NewMCPCmd creates the mcp subcommand, which serves the simulator as a
// Model Context Protocol tool over stdio.
func NewMCPCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the simulator as an MCP tool over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.NewMCPServer("fragsim", version)
			s.AddTool(simulateTool(), handleSimulate)
			return server.ServeStdio(s)
		},
	}
}

func simulateTool() mcp.Tool {
	return mcp.NewTool("simulate_fragmentation",
		mcp.WithDescription("Simulate RFC 791 IPv4 fragmentation of a packet crossing a path of network MTUs. Returns a JSON report with per-hop fragments, offsets, MF flags, and header overhead."),
		mcp.WithNumber("packet_size",
			mcp.Required(),
			mcp.Description("Total packet size in bytes, header included (20-65535)")),
		mcp.WithNumber("header_size",
			mcp.Description("IP header size in bytes, multiple of 4 (default 20)")),
		mcp.WithString("mtu_path",
			mcp.Required(),
			mcp.Description("Comma-separated MTU per hop, e.g. \"1500,576,1500\"")),
		mcp.WithNumber("fragment_id",
			mcp.Description("16-bit fragment identification value (default: generated)")),
	)
}

func handleSimulate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	packetSize, err := req.RequireInt("packet_size")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	headerSize := req.GetInt("header_size", 20)
	pathStr, err := req.RequireString("mtu_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mtuPath, err := parseMTUPath(pathStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id := uint16(req.GetInt("fragment_id", 0))
	if id == 0 {
		id = fragment.NewID()
	}

	rep, err := fragment.NewSimulator().Simulate(packetSize, headerSize, mtuPath, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := export.NewJSONExporter().Export(&buf, rep); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	return mcp.NewToolResultText(buf.String()), nil
}
