package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Healthsheet", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Healthsheet daily health table server. Query merged daily rows, nightly sleep summaries, daily cardiac summaries, and import run history."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetDailyRows, Handler: h.getDailyRows},
		server.ServerTool{Tool: toolGetSleepSummary, Handler: h.getSleepSummary},
		server.ServerTool{Tool: toolGetCardiacSummary, Handler: h.getCardiacSummary},
		server.ServerTool{Tool: toolListImportRuns, Handler: h.listImportRuns},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resLatestTable, Handler: h.latestTable},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resLatestTable = mcp.NewResource(
	"healthsheet://latest_table",
	"Latest Daily Table",
	mcp.WithResourceDescription("Merged daily sleep and cardiac rows for the last 30 days"),
	mcp.WithMIMEType("application/json"),
)
