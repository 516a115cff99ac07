package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lukaszwojcik89/worklog/core"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleGetWorklogReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("input_file", ""); f != "" {
		cfg.InputFile = f
	}
	cfg.LegacyFormat = request.GetBool("legacy", cfg.LegacyFormat)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	rows, report, err := core.GetReportResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	result := struct {
		Rows         any `json:"rows"`
		RowsAccepted int `json:"rows_accepted"`
		RowsRejected int `json:"rows_rejected"`
	}{Rows: rows, RowsAccepted: report.Accepted, RowsRejected: len(report.Rejects)}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAllocateCost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("input_file", ""); f != "" {
		cfg.InputFile = f
	}
	cfg.LegacyFormat = request.GetBool("legacy", cfg.LegacyFormat)
	cfg.Person = request.GetString("person", "")
	cfg.Gross = request.GetFloat("gross", 0)
	if m := request.GetFloat("monthly_hours", 0); m > 0 {
		cfg.MonthlyHours = m
	}

	window, err := contract.ParseWindow(request.GetString("window", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid allocation parameters: %v", err)), nil
	}
	cfg.Window = window

	allocation, err := core.GetCostResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("allocation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(allocation, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePersonSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("input_file", ""); f != "" {
		cfg.InputFile = f
	}
	cfg.LegacyFormat = request.GetBool("legacy", cfg.LegacyFormat)
	cfg.Person = request.GetString("person", "")
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	stats, err := core.GetPersonResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
