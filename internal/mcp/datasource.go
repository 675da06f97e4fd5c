package mcp

import (
	"context"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/escbch/TrainingApp-2/internal/training"
)

// SetSuggestion is one suggested working weight for a later set of an
// anchored exercise.
type SetSuggestion struct {
	SetIndex        int     `json:"set_index"`
	SuggestedWeight float64 `json:"suggested_weight"`
}

// DataSource abstracts the tracker for MCP tools. Local (in-process planner)
// and HTTPClient (remote via REST API) both satisfy it. Not-found conditions
// surface as nil results, never as errors.
type DataSource interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	GetActivePlan(ctx context.Context) (*models.ActivePlan, error)
	ListTrainingDays(ctx context.Context) ([]models.TrainingDay, error)
	GetTrainingDay(ctx context.Context, date models.Date) (*models.TrainingDay, error)
	GetDaySummary(ctx context.Context, date models.Date) (*models.TrainingDaySummary, error)
	CountMissingEntries(ctx context.Context, date models.Date) (int, error)
	GetSuggestions(ctx context.Context, date models.Date, exerciseID string) ([]SetSuggestion, error)
}

// Local adapts an in-process planner to the DataSource interface.
type Local struct {
	planner *training.Planner
}

var _ DataSource = (*Local)(nil)

// NewLocal wraps the planner for local MCP mode.
func NewLocal(planner *training.Planner) *Local {
	return &Local{planner: planner}
}

func (l *Local) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return l.planner.Plans(), nil
}

func (l *Local) GetActivePlan(ctx context.Context) (*models.ActivePlan, error) {
	return l.planner.Active(), nil
}

func (l *Local) ListTrainingDays(ctx context.Context) ([]models.TrainingDay, error) {
	return l.planner.TrainingDays(), nil
}

func (l *Local) GetTrainingDay(ctx context.Context, date models.Date) (*models.TrainingDay, error) {
	day, ok := l.planner.TrainingDay(date)
	if !ok {
		return nil, nil
	}
	return &day, nil
}

func (l *Local) GetDaySummary(ctx context.Context, date models.Date) (*models.TrainingDaySummary, error) {
	sum, ok := l.planner.DaySummary(date)
	if !ok {
		return nil, nil
	}
	return &sum, nil
}

func (l *Local) CountMissingEntries(ctx context.Context, date models.Date) (int, error) {
	return l.planner.CountMissingEntries(date), nil
}

func (l *Local) GetSuggestions(ctx context.Context, date models.Date, exerciseID string) ([]SetSuggestion, error) {
	suggestions, ok := l.planner.Suggestions(date, exerciseID)
	if !ok {
		return nil, nil
	}
	return sortedSuggestions(suggestions), nil
}
