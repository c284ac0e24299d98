// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     api
// Description: HTTP client for the LogMaster REST API
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/logmaster/dashboard/pkg/core/version"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept for logging
const maxErrorBody = 512

// Config holds client configuration
type Config struct {
	BaseURL string

	// Timeout per request. Zero means no timeout.
	Timeout time.Duration

	// RetryMax is the number of retries on connection errors.
	// Zero disables retries; the next poll tick is the retry.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	Logger zerolog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:8080",
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		Logger:       zerolog.Nop(),
	}
}

// Client fetches JSON from a LogMaster backend
type Client struct {
	base *url.URL
	http *retryablehttp.Client
	log  zerolog.Logger
}

// New creates a client for the backend at cfg.BaseURL
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}

	hc := CreateRetryableClient(cfg.RetryMax, cfg.RetryWaitMin, cfg.RetryWaitMax)
	hc.HTTPClient.Timeout = cfg.Timeout

	return &Client{
		base: base,
		http: hc,
		log:  cfg.Logger,
	}, nil
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Get fetches endpoint with the given query and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, endpoint string, params Params, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url(endpoint, params), nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Kind: KindNetwork, Err: err}
	}
	return c.do(req, endpoint, out)
}

// PostForm posts form as application/x-www-form-urlencoded and decodes the JSON body into out
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return &FetchError{Endpoint: endpoint, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, endpoint, out)
}

func (c *Client) url(endpoint string, params Params) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(endpoint, "/")
	u.RawQuery = params.Encode()
	return u.String()
}

func (c *Client) do(req *retryablehttp.Request, endpoint string, out any) error {
	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("endpoint", endpoint).
			Msg("request failed")
		return &FetchError{Endpoint: endpoint, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn().
			Str("request_id", requestID).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("unexpected status")
		return &FetchError{
			Endpoint:   endpoint,
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("endpoint", endpoint).
			Msg("failed to decode response")
		return &FetchError{Endpoint: endpoint, Kind: KindParse, StatusCode: resp.StatusCode, Err: err}
	}

	return nil
}

// CreateRetryableClient creates a retryable HTTP client for backend requests.
func CreateRetryableClient(retryMax int, retryWaitMin, retryWaitMax time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = nil
	client.CheckRetry = connectionRetryPolicy
	return client
}

// connectionRetryPolicy retries only when no response was received.
// HTTP statuses are reported to the caller as they are.
func connectionRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil {
		return false, nil
	}

	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error
	}

	return false, nil
}
