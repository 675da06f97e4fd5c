package mcp

import (
	"log/slog"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TrainingApp", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Strength-training plan tracker. Query the plan catalog, the active plan's schedule, per-day set entries and summaries, and effort-based weight suggestions."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
		server.ServerTool{Tool: toolGetActivePlan, Handler: h.getActivePlan},
		server.ServerTool{Tool: toolGetSchedule, Handler: h.getSchedule},
		server.ServerTool{Tool: toolGetTrainingDay, Handler: h.getTrainingDay},
		server.ServerTool{Tool: toolGetDaySummary, Handler: h.getDaySummary},
		server.ServerTool{Tool: toolCountMissingEntries, Handler: h.countMissingEntries},
		server.ServerTool{Tool: toolSuggestWeights, Handler: h.suggestWeights},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPlanCatalog, Handler: h.planCatalog},
		server.ServerResource{Resource: resScheduleOverview, Handler: h.scheduleOverview},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resPlanCatalog = mcp.NewResource(
	"trainingapp://plan_catalog",
	"Plan Catalog",
	mcp.WithResourceDescription("All selectable training plans with duration and weekly day count"),
	mcp.WithMIMEType("application/json"),
)

var resScheduleOverview = mcp.NewResource(
	"trainingapp://schedule_overview",
	"Schedule Overview",
	mcp.WithResourceDescription("The active plan and every scheduled day with its set count and missing-entry count"),
	mcp.WithMIMEType("application/json"),
)

func sortedSuggestions(m map[int]float64) []SetSuggestion {
	out := make([]SetSuggestion, 0, len(m))
	for idx, w := range m {
		out = append(out, SetSuggestion{SetIndex: idx, SuggestedWeight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetIndex < out[j].SetIndex })
	return out
}
