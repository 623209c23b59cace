package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// State is the provider's lifecycle phase, observable by callers instead
// of them silently consuming possibly-stale data.
type State int

const (
	StateLoading  State = iota // initial load not finished
	StateReady                 // remote catalog loaded
	StateFallback              // remote source failed, static catalog in use
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Provider owns the session catalog. Load-then-freeze: a load builds a
// complete Catalog and swaps it in one step; there is no incremental
// mutation, so readers never see a half-updated catalog. Threaded through
// constructors explicitly — no package-level singleton.
type Provider struct {
	sourceURL  string
	httpClient *http.Client
	log        *slog.Logger

	mu      sync.RWMutex
	state   State
	catalog *Catalog
}

// NewProvider creates a Provider in the Loading state. The fallback
// catalog is installed immediately so Catalog() is usable before Load.
func NewProvider(sourceURL string, timeout time.Duration, log *slog.Logger) *Provider {
	return &Provider{
		sourceURL:  sourceURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		state:      StateLoading,
		catalog:    Fallback(),
	}
}

// Catalog returns the current catalog snapshot. Never nil, never empty.
func (p *Provider) Catalog() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog
}

// State returns the current lifecycle state.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Load fetches the catalog from the remote source. On failure the static
// fallback is frozen in and the error returned for logging; the provider
// stays usable either way. Calling Load again is a wholesale refresh.
func (p *Provider) Load(ctx context.Context) error {
	defs, err := p.fetch(ctx)
	if err != nil {
		p.mu.Lock()
		p.state = StateFallback
		p.catalog = Fallback()
		p.mu.Unlock()
		p.log.Warn("catalog source unavailable, using static fallback",
			"source", p.sourceURL, "definitions", len(fallbackDefs), "error", err)
		return err
	}

	p.mu.Lock()
	p.state = StateReady
	p.catalog = New(defs)
	p.mu.Unlock()
	p.log.Info("catalog loaded", "source", p.sourceURL, "definitions", len(defs))
	return nil
}

func (p *Provider) fetch(ctx context.Context) ([]Definition, error) {
	if p.sourceURL == "" {
		return nil, fmt.Errorf("no catalog source configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog request failed (status %d): %s", resp.StatusCode, body)
	}

	var defs []Definition
	if err := json.NewDecoder(resp.Body).Decode(&defs); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog source returned zero definitions")
	}
	return defs, nil
}
