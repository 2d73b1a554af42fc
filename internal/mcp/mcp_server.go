// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rotnitxe/kpknfit/internal/contract"
)

// NewMCPServer initializes and configures the KPKN MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"KPKN Training Load Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: recommend_volume ---
	s.AddTool(mcp.NewTool("recommend_volume",
		mcp.WithDescription("Recommend weekly set volume (MEV, MAV, MRV) per muscle for an athlete."),
		mcp.WithString("muscles", mcp.Description("Comma-separated muscle names in English or Spanish. Defaults to every canonical muscle.")),
		mcp.WithString("athlete_id", mcp.Description("Athlete whose profile and feedback are used.")),
		mcp.WithString("phase", mcp.Description("Periodization phase. Defaults to 'accumulation'."), mcp.Enum("accumulation", "transformation", "realization", "deload")),
		mcp.WithString("intensity", mcp.Description("Proximity-to-failure tier. Defaults to 'rpe_8_9'."), mcp.Enum("failure", "rpe_8_9", "rpe_6_7")),
		mcp.WithNumber("frequency", mcp.Description("Sessions per week that train each muscle (1-7).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRecommendVolume)

	// --- 2. Tool: analyze_session ---
	s.AddTool(mcp.NewTool("analyze_session",
		mcp.WithDescription("Compute the CNS, muscular and spinal drain of one training session and the volume alerts it triggers."),
		mcp.WithString("session", mcp.Description("The session as a JSON or YAML document with an exercises list."), mcp.Required()),
		mcp.WithString("athlete_id", mcp.Description("Athlete whose settings size the tanks.")),
		mcp.WithBoolean("infer_missing", mcp.Description("Infer fatigue profiles from exercise names when the catalog has none.")),
	), h.handleAnalyzeSession)

	// --- 3. Tool: compute_tanks ---
	s.AddTool(mcp.NewTool("compute_tanks",
		mcp.WithDescription("Compute the personalized CNS, muscular and spinal capacity tanks of an athlete."),
		mcp.WithString("athlete_id", mcp.Description("Athlete whose stored settings are the starting point.")),
		mcp.WithNumber("bodyweight_kg", mcp.Description("Overrides the stored bodyweight.")),
		mcp.WithString("calorie_goal", mcp.Description("Overrides the stored calorie goal."), mcp.Enum("deficit", "maintenance", "surplus")),
		mcp.WithString("life_stress", mcp.Description("Overrides the stored life stress."), mcp.Enum("low", "moderate", "high")),
	), h.handleComputeTanks)

	return s
}

// StartMCPServer starts the KPKN MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
