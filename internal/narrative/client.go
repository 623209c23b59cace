// Package narrative talks to the external text-generation API that
// turns arena statistics into commentary. The engine hands over
// pre-aggregated numbers only and reads back exactly the structured
// fields it asked for; the prose itself passes through opaque.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftarena/internal/arena"
)

// Client sends match summaries to the text-generation API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a narrative client. An empty baseURL produces a
// disabled client whose Narrate returns ErrDisabled.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ErrDisabled is returned when no narrative API is configured.
var ErrDisabled = fmt.Errorf("narrative API not configured")

// Result is the narrator's answer: free prose plus the labeled fields
// the engine requested. Only the labeled fields are validated.
type Result struct {
	Narrative    string   `json:"narrative"`
	Winner       string   `json:"winner"`
	Equivalences []string `json:"equivalences"`
}

// request is the generation API's wire shape.
type request struct {
	Model   string         `json:"model"`
	Summary *arena.Summary `json:"summary"`
}

// Narrate sends a match summary and returns the narration. Retries up
// to 3 times with exponential backoff; the caller decides whether a
// failed narration degrades the response or fails it.
func (c *Client) Narrate(ctx context.Context, summary *arena.Summary) (*Result, error) {
	if c.baseURL == "" {
		return nil, ErrDisabled
	}

	body, err := json.Marshal(request{Model: c.model, Summary: summary})
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		result, err := c.post(ctx, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("narrating after 3 attempts: %w", lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/narrate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("narrative request failed (status %d): %s", resp.StatusCode, msg)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding narration: %w", err)
	}
	if result.Winner == "" {
		return nil, fmt.Errorf("narration missing winner field")
	}
	return &result, nil
}
