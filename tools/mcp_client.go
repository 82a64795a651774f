/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPInvoker executes tasks against an external MCP server over stdio.
// It lets a flow drive any MCP tool server, not just the built-ins.
type MCPInvoker struct {
	session *mcpsdk.ClientSession
}

// NewMCPInvoker launches the server command and performs the MCP
// handshake. The caller owns the invoker and must Close it.
func NewMCPInvoker(ctx context.Context, clientVersion, command string, args ...string) (*MCPInvoker, error) {
	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "flowwing",
		Version: clientVersion,
	}, nil)

	session, err := client.Connect(ctx, mcpsdk.NewCommandTransport(exec.Command(command, args...)))
	if err != nil {
		return nil, fmt.Errorf("connect to MCP server %q: %w", command, err)
	}
	return &MCPInvoker{session: session}, nil
}

// Invoke calls the named tool on the connected server. Per the MCP spec
// tool-level failures come back as results with IsError set, so both
// protocol errors and tool errors surface as invocation failures here.
func (inv *MCPInvoker) Invoke(ctx context.Context, tool string, input map[string]any) (any, error) {
	res, err := inv.session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      tool,
		Arguments: input,
	})
	if err != nil {
		return nil, fmt.Errorf("call tool %q: %w", tool, err)
	}

	text := flattenContent(res.Content)
	if res.IsError {
		if text == "" {
			text = fmt.Sprintf("tool %q reported an error", tool)
		}
		return nil, fmt.Errorf("%s", text)
	}

	// Structured outputs come back as JSON text; decode when possible so
	// downstream tasks receive the value, not its serialization.
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err == nil {
		return decoded, nil
	}
	return text, nil
}

// Close shuts down the session and the server process.
func (inv *MCPInvoker) Close() error {
	return inv.session.Close()
}

func flattenContent(content []mcpsdk.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
