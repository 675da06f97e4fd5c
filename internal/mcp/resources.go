package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) planCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plans, err := h.ds.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(plans)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) scheduleOverview(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	active, err := h.ds.GetActivePlan(ctx)
	if err != nil {
		return nil, err
	}

	days, err := h.ds.ListTrainingDays(ctx)
	if err != nil {
		return nil, err
	}

	type dayOverview struct {
		Date      string   `json:"date"`
		Exercises []string `json:"exercises"`
		SetCount  int      `json:"set_count"`
		Missing   int      `json:"missing_entries"`
	}

	overview := make([]dayOverview, 0, len(days))
	for _, day := range days {
		sets := 0
		names := make([]string, len(day.Exercises))
		for i, ex := range day.Exercises {
			sets += len(ex.Sets)
			names[i] = ex.Name
		}
		missing, err := h.ds.CountMissingEntries(ctx, day.Date)
		if err != nil {
			h.log.Warn("schedule_overview: missing count failed", "date", day.Date, "error", err)
		}
		overview = append(overview, dayOverview{
			Date:      day.Date.String(),
			Exercises: names,
			SetCount:  sets,
			Missing:   missing,
		})
	}

	data, err := json.Marshal(map[string]any{
		"active_plan": active,
		"days":        overview,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
