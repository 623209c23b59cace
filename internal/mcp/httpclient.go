package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftarena/internal/models"
	"github.com/claude/liftarena/internal/storage"
)

// HTTPClient implements DataSource by calling the LiftArena REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func rangeParams(login string, start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("user", login)
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) Workouts(ctx context.Context, login string, start, end time.Time) ([]models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts", rangeParams(login, start, end))
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

// History fetches the full workout history by querying from the epoch.
func (c *HTTPClient) History(ctx context.Context, login string) ([]models.Workout, error) {
	return c.Workouts(ctx, login, time.Unix(0, 0), time.Now())
}

func (c *HTTPClient) ProfileWeight(ctx context.Context, login string) (float64, error) {
	body, err := c.get(ctx, "/api/v1/users/"+url.PathEscape(login), nil)
	if err != nil {
		return 0, err
	}

	var u storage.User
	if err := json.Unmarshal(body, &u); err != nil {
		return 0, fmt.Errorf("httpclient: decode user: %w", err)
	}
	if u.BodyWeightKg == nil {
		return 0, nil
	}
	return *u.BodyWeightKg, nil
}

func (c *HTTPClient) VolumeSummary(ctx context.Context, login string, start, end time.Time, bucket string) ([]storage.VolumePeriod, error) {
	params := rangeParams(login, start, end)
	params.Set("bucket", bucket)

	body, err := c.get(ctx, "/api/v1/volume/summary", params)
	if err != nil {
		return nil, err
	}

	var periods []storage.VolumePeriod
	if err := json.Unmarshal(body, &periods); err != nil {
		return nil, fmt.Errorf("httpclient: decode volume summary: %w", err)
	}
	return periods, nil
}

func (c *HTTPClient) Stats(ctx context.Context, login string) (*storage.DataStats, error) {
	params := url.Values{}
	params.Set("user", login)

	body, err := c.get(ctx, "/api/v1/stats", params)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
