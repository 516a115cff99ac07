// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Worklog MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Worklog Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_worklog_report ---
	s.AddTool(mcp.NewTool("get_worklog_report",
		mcp.WithDescription("Aggregate a worklog export into the per-(person, task) rollup with creative metrics and categories."),
		mcp.WithString("input_file", mcp.Description("Path to the worklog CSV export."), mcp.Required()),
		mcp.WithBoolean("legacy", mcp.Description("Input uses the hierarchical three-level layout.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetWorklogReport)

	// --- 2. Tool: allocate_cost ---
	s.AddTool(mcp.NewTool("allocate_cost",
		mcp.WithDescription("Allocate one person's gross compensation across their tasks and categories inside a time window."),
		mcp.WithString("input_file", mcp.Description("Path to the worklog CSV export."), mcp.Required()),
		mcp.WithString("person", mcp.Description("The person whose compensation is allocated."), mcp.Required()),
		mcp.WithNumber("gross", mcp.Description("Gross compensation to allocate."), mcp.Required()),
		mcp.WithString("window", mcp.Description("Allocation window: 'all' or 'YYYY-MM'. Defaults to 'all'.")),
		mcp.WithNumber("monthly_hours", mcp.Description("Monthly hours basis for the 'all' window rate. Defaults to 168.")),
		mcp.WithBoolean("legacy", mcp.Description("Input uses the hierarchical three-level layout.")),
	), h.handleAllocateCost)

	// --- 3. Tool: person_summary ---
	s.AddTool(mcp.NewTool("person_summary",
		mcp.WithDescription("Summarize productivity per person: hours, creative hours, coverage and top task."),
		mcp.WithString("input_file", mcp.Description("Path to the worklog CSV export."), mcp.Required()),
		mcp.WithString("person", mcp.Description("Narrow the summary to a single person.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of people returned.")),
		mcp.WithBoolean("legacy", mcp.Description("Input uses the hierarchical three-level layout.")),
	), h.handlePersonSummary)

	return s
}

// StartMCPServer starts the Worklog MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
