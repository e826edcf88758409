// internal/adapter/sentiment/client.go

// Package sentiment fetches precomputed sentiment analyses from the upstream
// API.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sentilytics/internal/domain/analysis"
	"sentilytics/pkg/logger"
	"sentilytics/pkg/retry"
)

const sentimentPath = "/api/sentiment"

// maxBodySize bounds the response body read from upstream
const maxBodySize = 32 << 20

// Client is an analysis.Fetcher for the upstream sentiment endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      retry.Config
	log        logger.Logger
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry overrides the retry policy
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a new sentiment API client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: retry.DefaultConfig(),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("SentimentClient")
	return c
}

// Fetch implements analysis.Fetcher. Server errors and throttling are retried;
// other failures are returned immediately.
func (c *Client) Fetch(ctx context.Context, query string) (analysis.Result, error) {
	endpoint := c.baseURL + sentimentPath + "?query=" + url.QueryEscape(query)

	var result analysis.Result
	err := retry.Do(ctx, c.log, "fetch sentiment", func() error {
		r, err := c.fetchOnce(ctx, endpoint)
		if err != nil {
			return err
		}
		result = r
		return nil
	}, c.retry)
	if err != nil {
		return analysis.Result{}, err
	}

	c.log.Debug("Fetched sentiment analysis", "query", query, "total_results", result.TotalResults, "posts", len(result.Posts))
	return result, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) (analysis.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return analysis.Result{}, retry.Permanent(fmt.Errorf("%w: %v", analysis.ErrTransport, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return analysis.Result{}, retry.Permanent(fmt.Errorf("%w: %v", analysis.ErrTransport, ctx.Err()))
		}
		return analysis.Result{}, fmt.Errorf("%w: %v", analysis.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: reading body: %v", analysis.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: status %d", analysis.ErrTransport, resp.StatusCode)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return analysis.Result{}, err
		}
		return analysis.Result{}, retry.Permanent(err)
	}

	var result analysis.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return analysis.Result{}, retry.Permanent(fmt.Errorf("%w: %v", analysis.ErrPayload, err))
	}
	if result.TotalResults < 0 {
		return analysis.Result{}, retry.Permanent(fmt.Errorf("%w: negative total_results", analysis.ErrPayload))
	}
	return result, nil
}
