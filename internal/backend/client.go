// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/cartoproxy/internal/logging"
	"github.com/tomtom215/cartoproxy/internal/metrics"
	"github.com/tomtom215/cartoproxy/internal/models"
	"github.com/tomtom215/cartoproxy/internal/ogc"
)

// maxResponseBody caps how much of a backend response is read into
// memory. Map engine responses (tiles, capabilities, feature info) are
// far below this in practice.
const maxResponseBody = 256 << 20 // 256 MiB

// HTTPClient issues OGC requests against one map engine endpoint. The
// backend's response is returned verbatim: non-2xx statuses are data,
// not errors. Only transport failures return an error.
type HTTPClient struct {
	baseURL string
	kind    string
	http    *http.Client
}

// NewHTTPClient creates a client for the given endpoint. kind labels
// logs and metrics ("web" or "gis"). A non-positive timeout defaults
// to 30 seconds.
func NewHTTPClient(baseURL, kind string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		kind:    kind,
		http:    &http.Client{Timeout: timeout},
	}
}

// Do sends the request and returns the backend response as-is.
func (c *HTTPClient) Do(ctx context.Context, params ogc.Params) (models.OGCResponse, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.OGCResponse{}, fmt.Errorf("build backend request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(c.kind, "error", time.Since(start))
		return models.OGCResponse{}, fmt.Errorf("backend %s request: %w", c.kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		metrics.RecordBackendRequest(c.kind, "error", time.Since(start))
		return models.OGCResponse{}, fmt.Errorf("read backend %s response: %w", c.kind, err)
	}

	elapsed := time.Since(start)
	metrics.RecordBackendRequest(c.kind, fmt.Sprintf("%d", resp.StatusCode), elapsed)
	logging.Debug().
		Str("backend", c.kind).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", elapsed).
		Msg("Backend request completed")

	return models.OGCResponse{
		StatusCode: resp.StatusCode,
		MimeType:   resp.Header.Get("Content-Type"),
		Body:       string(body),
	}, nil
}
