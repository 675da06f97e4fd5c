package mcp

import (
	"context"
	"math"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List all selectable training plans: id, name, duration in weeks, and training days per week."),
)

var toolGetActivePlan = mcp.NewTool("get_active_plan",
	mcp.WithDescription("Get the currently activated plan (plan id, start date, training weekdays), or null when no plan is active."),
)

var toolGetSchedule = mcp.NewTool("get_schedule",
	mcp.WithDescription("List every scheduled training day in chronological order, including all exercises and sets with entered weights, RPEs, and completion flags."),
)

var toolGetTrainingDay = mcp.NewTool("get_training_day",
	mcp.WithDescription("Get one scheduled training day with its exercises and sets."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Training day date (YYYY-MM-DD)")),
)

var toolGetDaySummary = mcp.NewTool("get_day_summary",
	mcp.WithDescription("Compute the summary for one training day: total sets, total target reps, and total weight moved in kg (unentered weights count as zero)."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Training day date (YYYY-MM-DD)")),
)

var toolCountMissingEntries = mcp.NewTool("count_missing_entries",
	mcp.WithDescription("Count the sets of a training day that have neither a weight nor an achieved RPE entered. Returns 0 for unscheduled dates."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Training day date (YYYY-MM-DD)")),
)

var toolSuggestWeights = mcp.NewTool("suggest_weights",
	mcp.WithDescription("Suggest working weights for the later sets of an exercise anchored to its first set's estimated one-rep max. Empty until the first set has a weight entered."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Training day date (YYYY-MM-DD)")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise instance id from the training day")),
)

// --- Tool handlers ---

func (h *handlers) listPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.ds.ListPlans(ctx)
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActivePlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active, err := h.ds.GetActivePlan(ctx)
	if err != nil {
		h.log.Error("mcp get_active_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if active == nil {
		return mcp.NewToolResultText("no plan is currently active"), nil
	}

	result, err := mcp.NewToolResultJSON(active)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSchedule(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := h.ds.ListTrainingDays(ctx)
	if err != nil {
		h.log.Error("mcp get_schedule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(days)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, errResult := requireDate(req)
	if errResult != nil {
		return errResult, nil
	}

	day, err := h.ds.GetTrainingDay(ctx, date)
	if err != nil {
		h.log.Error("mcp get_training_day", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if day == nil {
		return mcp.NewToolResultText("no training day scheduled on " + date.String()), nil
	}

	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDaySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, errResult := requireDate(req)
	if errResult != nil {
		return errResult, nil
	}

	sum, err := h.ds.GetDaySummary(ctx, date)
	if err != nil {
		h.log.Error("mcp get_day_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if sum == nil {
		return mcp.NewToolResultText("no training day scheduled on " + date.String()), nil
	}

	result, err := mcp.NewToolResultJSON(sum)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) countMissingEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, errResult := requireDate(req)
	if errResult != nil {
		return errResult, nil
	}

	missing, err := h.ds.CountMissingEntries(ctx, date)
	if err != nil {
		h.log.Error("mcp count_missing_entries", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]int{"missing": missing})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestWeights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, errResult := requireDate(req)
	if errResult != nil {
		return errResult, nil
	}
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	suggestions, err := h.ds.GetSuggestions(ctx, date, exerciseID)
	if err != nil {
		h.log.Error("mcp suggest_weights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	// Presentation rounding only; the engine keeps suggestions exact.
	rounded := make([]SetSuggestion, len(suggestions))
	for i, s := range suggestions {
		s.SuggestedWeight = roundTenth(s.SuggestedWeight)
		rounded[i] = s
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"suggestions": rounded})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func requireDate(req mcp.CallToolRequest) (models.Date, *mcp.CallToolResult) {
	s, err := req.RequireString("date")
	if err != nil {
		return models.Date{}, mcp.NewToolResultError("date parameter is required")
	}
	date, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, mcp.NewToolResultError("invalid date format: " + err.Error())
	}
	return date, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
