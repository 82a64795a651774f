/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/josephgoksu/FlowWing/mcp"
	"github.com/josephgoksu/FlowWing/tools"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP tool server",
	Long: `Start a Model Context Protocol (MCP) server exposing the built-in
FlowWing tools (base64 encrypt/decrypt, calculator) and read-only
resources (version, status, tool list) over stdio.

Point any MCP client at it, including FlowWing itself:
  flowwing run tasks.yaml --mcp-server "flowwing mcp"

The server runs until the client disconnects.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q\nRun '%s --help' for usage", args[0], cmd.CommandPath(), cmd.Root().Name())
		}
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	// NOTE: stdio transport only. Stdout must stay pure JSON-RPC.
}

func runMCPServer(ctx context.Context) error {
	// All status/debug output goes to stderr only.
	fmt.Fprintln(os.Stderr, "FlowWing MCP Server starting...")

	server := mcp.NewServer(version, tools.NewLocalInvoker())

	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
