package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// HTTPClient implements DataSource by calling the TrainingApp REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// schedule lives on a server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get performs a GET and returns the body. A 404 returns (nil, nil) so
// callers can map it to an absent result.
func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListPlans(ctx context.Context) ([]models.Plan, error) {
	body, err := c.get(ctx, "/api/v1/plans")
	if err != nil || body == nil {
		return nil, err
	}

	var plans []models.Plan
	if err := json.Unmarshal(body, &plans); err != nil {
		return nil, fmt.Errorf("httpclient: decode plans: %w", err)
	}
	return plans, nil
}

func (c *HTTPClient) GetActivePlan(ctx context.Context) (*models.ActivePlan, error) {
	body, err := c.get(ctx, "/api/v1/active")
	if err != nil || body == nil {
		return nil, err
	}

	// The server answers 200 with a JSON null when no plan is active.
	var active *models.ActivePlan
	if err := json.Unmarshal(body, &active); err != nil {
		return nil, fmt.Errorf("httpclient: decode active plan: %w", err)
	}
	return active, nil
}

func (c *HTTPClient) ListTrainingDays(ctx context.Context) ([]models.TrainingDay, error) {
	body, err := c.get(ctx, "/api/v1/days")
	if err != nil || body == nil {
		return nil, err
	}

	var days []models.TrainingDay
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("httpclient: decode days: %w", err)
	}
	return days, nil
}

func (c *HTTPClient) GetTrainingDay(ctx context.Context, date models.Date) (*models.TrainingDay, error) {
	body, err := c.get(ctx, "/api/v1/days/"+date.String())
	if err != nil || body == nil {
		return nil, err
	}

	var day models.TrainingDay
	if err := json.Unmarshal(body, &day); err != nil {
		return nil, fmt.Errorf("httpclient: decode day: %w", err)
	}
	return &day, nil
}

func (c *HTTPClient) GetDaySummary(ctx context.Context, date models.Date) (*models.TrainingDaySummary, error) {
	body, err := c.get(ctx, "/api/v1/days/"+date.String()+"/summary")
	if err != nil || body == nil {
		return nil, err
	}

	var sum models.TrainingDaySummary
	if err := json.Unmarshal(body, &sum); err != nil {
		return nil, fmt.Errorf("httpclient: decode summary: %w", err)
	}
	return &sum, nil
}

func (c *HTTPClient) CountMissingEntries(ctx context.Context, date models.Date) (int, error) {
	body, err := c.get(ctx, "/api/v1/days/"+date.String()+"/missing")
	if err != nil || body == nil {
		return 0, err
	}

	var resp struct {
		Missing int `json:"missing"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("httpclient: decode missing count: %w", err)
	}
	return resp.Missing, nil
}

func (c *HTTPClient) GetSuggestions(ctx context.Context, date models.Date, exerciseID string) ([]SetSuggestion, error) {
	body, err := c.get(ctx, "/api/v1/days/"+date.String()+"/exercises/"+exerciseID+"/suggestions")
	if err != nil || body == nil {
		return nil, err
	}

	var resp struct {
		Suggestions []SetSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode suggestions: %w", err)
	}
	return resp.Suggestions, nil
}
