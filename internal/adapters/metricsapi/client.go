// Package metricsapi fetches environmental metrics from the /api/data endpoint.
package metricsapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/envcharts/internal/domain/model"
	"github.com/okian/envcharts/pkg/logger"
	"github.com/okian/envcharts/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client issues GET requests against a metrics endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// New creates a client for the given origin, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Fetch GETs path and decodes the body. There is no retry.
func (c *Client) Fetch(ctx context.Context, path string) (model.MetricsResponse, error) {
	target := c.URL(path)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return model.MetricsResponse{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordFetchError("transport")
		return model.MetricsResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	metrics.RecordFetch(strconv.Itoa(resp.StatusCode), float64(elapsed.Milliseconds()))
	if err != nil {
		metrics.RecordFetchError("transport")
		return model.MetricsResponse{}, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	c.logger.Debug(ctx, "metrics response",
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
		logger.Duration("elapsed", elapsed),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordFetchError("status")
		return model.MetricsResponse{}, &StatusError{Code: resp.StatusCode, URL: target}
	}

	out, err := Decode(body)
	if err != nil {
		metrics.RecordFetchError("decode")
		return model.MetricsResponse{}, err
	}
	return out, nil
}

// Kind names the failure class of a Fetch error for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrRequest):
		return "request"
	default:
		return "unknown"
	}
}
