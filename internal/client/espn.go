package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nfl_dashboard/service/internal/metrics"
	"nfl_dashboard/service/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public ESPN site API for the NFL
const DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"

// Endpoint labels used for metrics
const (
	EndpointScoreboard = "scoreboard"
	EndpointSummary    = "summary"
)

// StatusError is returned when upstream answers with a non-success status
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ESPN API returned status %d", e.StatusCode)
}

// Client is the ESPN site API client
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	rateLimiter chan struct{} // Bounds concurrent upstream requests
}

// Options configures a Client
type Options struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	MaxConcurrent int
	HTTPClient    *http.Client // Optional, overrides Timeout
}

// NewClient creates a new ESPN API client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "nfl-dashboard/1.0"
	}

	rateLimiter := make(chan struct{}, opts.MaxConcurrent)
	for i := 0; i < opts.MaxConcurrent; i++ {
		rateLimiter <- struct{}{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		rateLimiter: rateLimiter,
		httpClient:  httpClient,
	}
}

// get performs a single GET request and decodes the JSON object body.
// There are no retries: callers decide what a failure means.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.rateLimiter:
		defer func() { c.rateLimiter <- struct{}{} }()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.Debug().
		Str("url", u).
		Str("method", req.Method).
		Msg("Making API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(endpoint, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.RecordAPICall(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: u, Body: truncate(string(body), 256)}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	log.Debug().
		Str("url", u).
		Int("status", resp.StatusCode).
		Int("size", len(body)).
		Msg("API request successful")

	return payload, nil
}

// ScoreboardURLs returns the scoreboard query variants for a week, in the
// order they are tried: with the year first, then without it
func ScoreboardURLs(q models.ScheduleQuery) []url.Values {
	withYear := url.Values{}
	withYear.Set("dates", strconv.Itoa(q.Year))
	withYear.Set("seasontype", strconv.Itoa(int(q.SeasonType)))
	withYear.Set("week", strconv.Itoa(q.Week))

	withoutYear := url.Values{}
	withoutYear.Set("seasontype", strconv.Itoa(int(q.SeasonType)))
	withoutYear.Set("week", strconv.Itoa(q.Week))

	return []url.Values{withYear, withoutYear}
}

// FetchWeekScoreboard fetches the scoreboard for one week, trying each query
// variant in turn. The first successful, parseable response wins; if every
// variant fails the last error is returned.
func (c *Client) FetchWeekScoreboard(ctx context.Context, q models.ScheduleQuery) (map[string]interface{}, error) {
	var lastErr error
	for i, params := range ScoreboardURLs(q) {
		payload, err := c.get(ctx, EndpointScoreboard, params)
		if err == nil {
			if i > 0 {
				metrics.RecordScheduleFallback("fallback_used")
			}
			return payload, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn().
			Err(err).
			Int("variant", i+1).
			Int("year", q.Year).
			Int("week", q.Week).
			Int("season_type", int(q.SeasonType)).
			Msg("Scoreboard request failed, trying next variant")
	}

	metrics.RecordScheduleFallback("exhausted")
	return nil, fmt.Errorf("failed to fetch scoreboard: %w", lastErr)
}

// FetchScoreboard fetches the scoreboard with no parameters, which upstream
// answers with the current week
func (c *Client) FetchScoreboard(ctx context.Context) (map[string]interface{}, error) {
	payload, err := c.get(ctx, EndpointScoreboard, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current scoreboard: %w", err)
	}
	return payload, nil
}

// FetchSummary fetches the detail payload for one game. Single attempt.
func (c *Client) FetchSummary(ctx context.Context, eventID string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("event", eventID)

	payload, err := c.get(ctx, EndpointSummary, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game summary: %w", err)
	}
	return payload, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
