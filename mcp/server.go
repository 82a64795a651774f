/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package mcp exposes the built-in FlowWing tools over the Model Context
// Protocol, plus read-only resources describing the server. Transport is
// stdio only; stdout must stay pure JSON-RPC, diagnostics go to stderr.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/josephgoksu/FlowWing/tools"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// TextParams is the input shape of the base64 tools.
type TextParams struct {
	Text string `json:"text" jsonschema:"the string payload to encode or decode"`
}

// CalculatorParams is the input shape of the arithmetic tools.
type CalculatorParams struct {
	A float64 `json:"a" jsonschema:"first operand"`
	B float64 `json:"b" jsonschema:"second operand"`
}

// NewServer builds the MCP server with every built-in tool and resource
// registered. The invoker supplies tool implementations so that the MCP
// surface and `flowwing run` share one code path.
func NewServer(version string, inv *tools.LocalInvoker) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "flowwing-mcp",
		Version: version,
	}

	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintln(os.Stderr, "✓ MCP connection established")
		},
	}

	server := mcpsdk.NewServer(impl, serverOpts)
	startedAt := time.Now()

	for _, t := range inv.Tools() {
		registerTool(server, inv, t)
	}
	registerResources(server, version, startedAt, inv)

	return server
}

// registerTool maps a built-in tool onto a typed MCP tool declaration.
// The schema type only shapes the declared input; dispatch goes through
// the invoker with the raw argument map.
func registerTool(server *mcpsdk.Server, inv *tools.LocalInvoker, t tools.Tool) {
	tool := &mcpsdk.Tool{
		Name:        t.Name,
		Description: t.Description,
	}

	switch t.Name {
	case "encrypt", "decrypt":
		mcpsdk.AddTool(server, tool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[TextParams]) (*mcpsdk.CallToolResultFor[any], error) {
			return dispatch(ctx, inv, t.Name, map[string]any{"text": params.Arguments.Text})
		})
	default:
		mcpsdk.AddTool(server, tool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[CalculatorParams]) (*mcpsdk.CallToolResultFor[any], error) {
			return dispatch(ctx, inv, t.Name, map[string]any{"a": params.Arguments.A, "b": params.Arguments.B})
		})
	}
}

// dispatch runs the tool and wraps the outcome in an MCP result. Per MCP
// spec, tool failures are returned in the result with IsError=true (not as
// protocol errors) so the calling LLM can see them and self-correct.
func dispatch(ctx context.Context, inv *tools.LocalInvoker, name string, input map[string]any) (*mcpsdk.CallToolResultFor[any], error) {
	output, err := inv.Invoke(ctx, name, input)
	if err != nil {
		return errorResponse(err)
	}
	return textResponse(renderOutput(output))
}

func textResponse(text string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}, nil
}

func errorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, nil
}

// renderOutput serializes a tool output for transport. Strings pass
// through; everything else goes out as JSON so clients can decode it.
func renderOutput(output any) string {
	if s, ok := output.(string); ok {
		return s
	}
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Sprintf("%v", output)
	}
	return string(data)
}
