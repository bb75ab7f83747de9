// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cartoproxy/internal/cache"
	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/middleware"
	"github.com/tomtom215/cartoproxy/internal/ogc"
)

// Router holds the gateway's HTTP surface dependencies.
type Router struct {
	cfg       *config.Config
	registry  *config.Registry
	mediator  *ogc.Mediator
	store     cache.Store
	chimw     *ChiMiddleware
	startTime time.Time
}

// NewRouter creates the gateway router. store may be nil when no cache
// driver is configured.
func NewRouter(cfg *config.Config, registry *config.Registry, mediator *ogc.Mediator, store cache.Store) *Router {
	chimw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,

		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})

	return &Router{
		cfg:       cfg,
		registry:  registry,
		mediator:  mediator,
		store:     store,
		chimw:     chimw,
		startTime: time.Now(),
	}
}

// Handler builds the chi mux. Middleware order, outermost first:
// panic recovery, real IP, request ID, metrics, security headers,
// CORS, then identity extraction ahead of the route groups.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.PrometheusMetrics())
	r.Use(SecurityHeaders())
	r.Use(rt.chimw.CORS())
	r.Use(middleware.Identity(rt.cfg.Identity))

	// OGC service endpoint: GET and form-encoded POST.
	r.Group(func(r chi.Router) {
		r.Use(rt.chimw.RateLimitOGC())
		r.Get("/ows/{repository}/{project}", rt.HandleOWS)
		r.Post("/ows/{repository}/{project}", rt.HandleOWS)
	})

	// Media endpoint referenced by rewritten feature-info fragments.
	r.Group(func(r chi.Router) {
		r.Use(rt.chimw.RateLimitMedia())
		r.Get("/media/{repository}/{project}", rt.HandleMedia)
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.chimw.RateLimitHealth())
		r.Get("/api/v1/health", rt.HandleHealth)
		r.Get("/api/v1/health/live", rt.HandleHealthLive)
		r.Get("/api/v1/health/ready", rt.HandleHealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
