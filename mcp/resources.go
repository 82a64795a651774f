/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package mcp

// Read-only resources: version, status, tool list

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/josephgoksu/FlowWing/tools"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcpsdk.Server, version string, startedAt time.Time, inv *tools.LocalInvoker) {
	server.AddResource(&mcpsdk.Resource{
		URI:         "flowwing://version",
		Name:        "version",
		Description: "FlowWing MCP server version",
		MIMEType:    "application/json",
	}, versionResourceHandler(version))

	server.AddResource(&mcpsdk.Resource{
		URI:         "flowwing://status",
		Name:        "status",
		Description: "Server status: uptime, process id, available tools",
		MIMEType:    "application/json",
	}, statusResourceHandler(version, startedAt, inv))

	server.AddResource(&mcpsdk.Resource{
		URI:         "flowwing://tools",
		Name:        "tools",
		Description: "List of available tools with descriptions",
		MIMEType:    "application/json",
	}, toolsResourceHandler(inv))
}

func versionResourceHandler(version string) mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		return jsonResource(params.URI, map[string]any{
			"name":    "flowwing-mcp",
			"version": version,
		})
	}
}

func statusResourceHandler(version string, startedAt time.Time, inv *tools.LocalInvoker) mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		uptime := time.Since(startedAt)
		toolNames := make([]string, 0)
		for _, t := range inv.Tools() {
			toolNames = append(toolNames, t.Name)
		}
		return jsonResource(params.URI, map[string]any{
			"status":           "running",
			"version":          version,
			"timestamp":        time.Now().Format(time.RFC3339),
			"started_at":       startedAt.Format(time.RFC3339),
			"uptime_seconds":   int64(uptime.Seconds()),
			"uptime_formatted": formatUptime(uptime),
			"process_id":       os.Getpid(),
			"tools_available":  toolNames,
			"resources_available": []string{
				"flowwing://version", "flowwing://status", "flowwing://tools",
			},
		})
	}
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func toolsResourceHandler(inv *tools.LocalInvoker) mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		type toolInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		list := make([]toolInfo, 0)
		for _, t := range inv.Tools() {
			list = append(list, toolInfo{Name: t.Name, Description: t.Description})
		}
		return jsonResource(params.URI, map[string]any{
			"tools": list,
			"count": len(list),
		})
	}
}

func jsonResource(uri string, payload any) (*mcpsdk.ReadResourceResult, error) {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource payload: %w", err)
	}
	return &mcpsdk.ReadResourceResult{
		Contents: []*mcpsdk.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		},
	}, nil
}
