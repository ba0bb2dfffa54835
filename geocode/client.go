// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jcodagnone/geocoder/utils/httputils"
)

const maxErrorBody = 512

// Client fetches geocoding responses over HTTP. It performs exactly one
// request per call: no caching, retries or rate limiting.
type Client struct {
	builder    *RequestBuilder
	creds      *Credentials
	sensor     bool
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithCredentials enables the client parameter and URL signing.
func WithCredentials(creds Credentials) ClientOption {
	return func(c *Client) {
		c.creds = &creds
	}
}

// WithSensor sets the value of the sensor parameter.
func WithSensor(sensor bool) ClientOption {
	return func(c *Client) {
		c.sensor = sensor
	}
}

// WithServiceRoot overrides DefaultServiceRoot.
func WithServiceRoot(root string) ClientOption {
	return func(c *Client) {
		c.builder = NewRequestBuilder(root)
	}
}

// WithLogger sets the logger for request lifecycle messages.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client. Without options it targets DefaultServiceRoot
// unsigned, with sensor=false and a 10 second timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		builder:    NewRequestBuilder(DefaultServiceRoot),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}

// URL returns the request URL for q without fetching it.
func (c *Client) URL(q Query) (string, error) {
	return c.builder.Build(q, c.creds, c.sensor)
}

// GeocodeRaw returns the raw response body for q, in q.Format. Transport
// errors are returned as produced by the HTTP client; non-2xx answers
// yield a *StatusError.
func (c *Client) GeocodeRaw(ctx context.Context, q Query) ([]byte, error) {
	reqURL, err := c.URL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.DebugContext(ctx, "geocoding request", "url", httputils.RedactURL(reqURL))

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "geocoding response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return body, nil
}

// Geocode fetches q and wraps the decoded response.
func (c *Client) Geocode(ctx context.Context, q Query) (*ResultView, error) {
	body, err := c.GeocodeRaw(ctx, q)
	if err != nil {
		return nil, err
	}

	view, err := Parse(body, q.Format)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "geocoding result", "status", view.Status(), "results", view.Len())

	return view, nil
}
