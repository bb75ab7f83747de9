// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartoproxy/internal/cache"
	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/logging"
	"github.com/tomtom215/cartoproxy/internal/metrics"
	"github.com/tomtom215/cartoproxy/internal/models"
)

// MapClient issues a single call against the backend map engine (or a
// cache-fronted path in front of it) and returns the status/mime/body
// triple. Implementations own timeout and retry policy; the mediator
// performs no retries of its own.
type MapClient interface {
	Do(ctx context.Context, params Params) (models.OGCResponse, error)
}

// MediatorConfig wires a Mediator. Web and GIS are the cache-fronted
// and direct engine clients; Store may be nil when no cache driver is
// configured, which disables cache admission entirely.
type MediatorConfig struct {
	Services       *config.ServicesConfig
	Web            MapClient
	GIS            MapClient
	Store          cache.Store
	CacheTTL       time.Duration
	BaseURL        string
	MediaEndpoint  string
	FilterOverride bool
}

// Mediator runs the per-request mediation sequence: parameter build,
// size gate, cache admission, backend call, response rewriting. It is
// stateless across requests; all fields are read-only after
// construction and safe for concurrent use.
type Mediator struct {
	services       *config.ServicesConfig
	web            MapClient
	gis            MapClient
	store          cache.Store
	cacheTTL       time.Duration
	baseURL        string
	mediaEndpoint  string
	filterOverride bool
}

// NewMediator creates a Mediator from the given configuration.
func NewMediator(cfg MediatorConfig) *Mediator {
	endpoint := cfg.MediaEndpoint
	if endpoint == "" {
		endpoint = DefaultMediaEndpoint
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Mediator{
		services:       cfg.Services,
		web:            cfg.Web,
		gis:            cfg.GIS,
		store:          cfg.Store,
		cacheTTL:       ttl,
		baseURL:        cfg.BaseURL,
		mediaEndpoint:  endpoint,
		filterOverride: cfg.FilterOverride,
	}
}

// Handle mediates one OGC request against the given project. The
// returned response is ready to be written to the client; err is
// non-nil only for backend or cache transport failures.
func (m *Mediator) Handle(ctx context.Context, project *models.Project, raw Params, ident models.Identity) (models.OGCResponse, error) {
	params := BuildParameters(raw, project, ident, m.filterOverride)

	if params.IsGetMap() && m.rejectOversized(params, project) {
		metrics.RecordSizeRejection(project.RepositoryKey, project.Key)
		return models.OGCResponse{
			StatusCode: http.StatusRequestEntityTooLarge,
			MimeType:   "text/plain",
			Body:       "The requested map size is too large",
		}, nil
	}

	layer := project.Layer(firstLayer(params))
	useCache, kind := UseCache(layer, params, m.store != nil)
	metrics.RecordClientSelection(string(kind))

	key := m.cacheKey(project, params)
	if useCache {
		if resp, ok := m.cacheLookup(ctx, key); ok {
			metrics.RecordResponseCache(true)
			return m.rewrite(resp, project, params), nil
		}
		metrics.RecordResponseCache(false)
	}

	client := m.web
	if kind == ClientGIS {
		client = m.gis
	}

	resp, err := client.Do(ctx, params)
	if err != nil {
		return models.OGCResponse{}, fmt.Errorf("backend %s call: %w", kind, err)
	}

	if useCache && resp.StatusCode == http.StatusOK {
		m.cacheStore(ctx, key, resp)
	}

	return m.rewrite(resp, project, params), nil
}

// rejectOversized reports whether a get-map request exceeds the
// configured image-size bounds. CheckMaximumWidthHeight signals
// whether any height bound is configured at all (see its compatibility
// note); only when one is does the actual comparison run.
func (m *Mediator) rejectOversized(params Params, project *models.Project) bool {
	width := params.IntValue("width")
	height := params.IntValue("height")

	if CheckMaximumWidthHeight(width, height, project, m.services) {
		return false
	}

	if max, ok := parseLimit(effectiveLimit(project.WMSMaxWidth, m.services.WMSMaxWidth)); ok && width > max {
		return true
	}
	if max, ok := parseLimit(effectiveLimit(project.WMSMaxHeight, m.services.WMSMaxHeight)); ok && height > max {
		return true
	}
	return false
}

// parseLimit parses a configured size limit. Empty or malformed values
// impose no bound.
func parseLimit(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// firstLayer returns the first entry of the layers parameter, the one
// the cache admission flag is read from.
func firstLayer(params Params) string {
	layers := params.Value("layers")
	name, _, _ := strings.Cut(layers, ",")
	return strings.TrimSpace(name)
}

// cacheKey derives the response cache key. The repository key scopes
// the entry; the parameter hash covers the full outbound set, identity
// parameters included, so differently filtered responses never share
// an entry.
func (m *Mediator) cacheKey(project *models.Project, params Params) string {
	sum := sha256.Sum256([]byte(params.Encode()))
	return "ogc:" + project.RepositoryKey + ":" + project.Key + ":" + hex.EncodeToString(sum[:])
}

// cachedResponse is the cache wire form. Body is a byte slice so that
// binary tile payloads survive the JSON round trip via base64.
type cachedResponse struct {
	StatusCode int    `json:"status_code"`
	MimeType   string `json:"mime_type"`
	Body       []byte `json:"body"`
}

func (m *Mediator) cacheLookup(ctx context.Context, key string) (models.OGCResponse, bool) {
	data, ok, err := m.store.Get(ctx, key)
	if err != nil {
		logging.Warn().Err(err).Msg("Response cache lookup failed")
		return models.OGCResponse{}, false
	}
	if !ok {
		return models.OGCResponse{}, false
	}

	var entry cachedResponse
	if err := json.Unmarshal(data, &entry); err != nil {
		logging.Warn().Err(err).Msg("Discarding undecodable cache entry")
		return models.OGCResponse{}, false
	}
	return models.OGCResponse{
		StatusCode: entry.StatusCode,
		MimeType:   entry.MimeType,
		Body:       string(entry.Body),
	}, true
}

func (m *Mediator) cacheStore(ctx context.Context, key string, resp models.OGCResponse) {
	data, err := json.Marshal(cachedResponse{
		StatusCode: resp.StatusCode,
		MimeType:   resp.MimeType,
		Body:       []byte(resp.Body),
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to encode response for cache")
		return
	}
	if err := m.store.Set(ctx, key, data, m.cacheTTL); err != nil {
		// A failed cache write never fails the request.
		logging.Warn().Err(err).Msg("Response cache store failed")
	}
}

// rewrite post-processes the backend response: capability and context
// documents get their xlink:href references pointed back at the
// portal, and feature-info fragments get their media paths routed
// through the media endpoint. Absence of either marker leaves the body
// unchanged.
func (m *Mediator) rewrite(resp models.OGCResponse, project *models.Project, params Params) models.OGCResponse {
	fullURL := ServiceURL(m.baseURL, project.RepositoryKey, project.Key)
	out := RewriteHrefs(resp, fullURL)

	if strings.EqualFold(params.Value("request"), "getfeatureinfo") && out.IsTextual() {
		out.Body = RewriteMediaURLs(out.Body, m.mediaEndpoint)
	}
	return out
}
