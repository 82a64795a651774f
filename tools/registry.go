/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package tools provides the built-in tool set and the invokers that
// execute tasks: a local in-process invoker over a name → handler table,
// and an MCP client invoker that calls tools on an external MCP server.
package tools

import (
	"context"
	"fmt"
	"sort"
)

// Handler executes one tool call.
type Handler func(ctx context.Context, input map[string]any) (any, error)

// Tool is a named capability with a human-readable description.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// LocalInvoker executes tools in-process. It implements executor.Invoker.
type LocalInvoker struct {
	tools map[string]Tool
}

// NewLocalInvoker returns an invoker preloaded with the built-in tools.
func NewLocalInvoker() *LocalInvoker {
	inv := &LocalInvoker{tools: make(map[string]Tool)}
	for _, t := range builtinTools() {
		inv.Register(t)
	}
	return inv
}

// Register adds or replaces a tool.
func (inv *LocalInvoker) Register(t Tool) {
	inv.tools[t.Name] = t
}

// Tools returns the registered tools sorted by name.
func (inv *LocalInvoker) Tools() []Tool {
	out := make([]Tool, 0, len(inv.tools))
	for _, t := range inv.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Invoke dispatches a task's tool call to the registered handler.
func (inv *LocalInvoker) Invoke(ctx context.Context, tool string, input map[string]any) (any, error) {
	t, ok := inv.tools[tool]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %q", tool)
	}
	return t.Handler(ctx, input)
}

func builtinTools() []Tool {
	return []Tool{
		{Name: "encrypt", Description: "Encode a UTF-8 string to base64.", Handler: encryptHandler},
		{Name: "decrypt", Description: "Decode a base64 string back to UTF-8 (hex if the payload is binary).", Handler: decryptHandler},
		{Name: "add", Description: "Add two numbers.", Handler: calculatorHandler("add")},
		{Name: "subtract", Description: "Subtract the second number from the first.", Handler: calculatorHandler("subtract")},
		{Name: "multiply", Description: "Multiply two numbers.", Handler: calculatorHandler("multiply")},
		{Name: "divide", Description: "Divide the first number by the second.", Handler: calculatorHandler("divide")},
		{Name: "modulo", Description: "Remainder of dividing the first number by the second.", Handler: calculatorHandler("modulo")},
	}
}
