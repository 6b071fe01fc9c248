package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"snow-tracker/internal/logger"
)

// ErrUpstreamStatus is returned for a non-2xx answer from the geolocation service.
var ErrUpstreamStatus = errors.New("geolocation service returned non-success status")

// FetcherConfig configures the upstream call and its circuit breaker.
type FetcherConfig struct {
	URL              string
	Token            string
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Fetcher calls the IP geolocation service.
type Fetcher struct {
	client  *http.Client
	url     string
	breaker *gobreaker.CircuitBreaker[map[string]any]
	logger  *logger.Logger
}

func NewFetcher(cfg FetcherConfig, client *http.Client, log *logger.Logger) (*Fetcher, error) {
	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid geolocation url %q: %w", cfg.URL, err)
	}
	if cfg.Token != "" {
		q := target.Query()
		q.Set("token", cfg.Token)
		target.RawQuery = q.Encode()
	}

	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:    "geolocation",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A cancelled caller says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("GATEWAY", fmt.Sprintf("Circuit breaker %s changed from %s to %s", name, from, to))
		},
	}

	return &Fetcher{
		client:  client,
		url:     target.String(),
		breaker: gobreaker.NewCircuitBreaker[map[string]any](settings),
		logger:  log,
	}, nil
}

// FetchLocation returns the upstream JSON object unchanged.
func (f *Fetcher) FetchLocation(ctx context.Context) (map[string]any, error) {
	return f.breaker.Execute(func() (map[string]any, error) {
		return f.fetch(ctx)
	})
}

// BreakerState reports the circuit breaker state for diagnostics.
func (f *Fetcher) BreakerState() string {
	return f.breaker.State().String()
}

func (f *Fetcher) fetch(ctx context.Context) (map[string]any, error) {
	f.logger.Debug("GATEWAY", "Fetching location from upstream")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create location request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation service error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			f.logger.Error("GATEWAY", fmt.Sprintf("Failed to close location response body: %v", err))
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var location map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&location); err != nil {
		return nil, fmt.Errorf("failed to decode location response: %w", err)
	}
	if location == nil {
		location = map[string]any{}
	}
	return location, nil
}
