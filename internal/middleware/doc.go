// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

/*
Package middleware provides HTTP middleware for the gateway router.

Three concerns live here:

  - Request ID: UUID-based request tracking wired into the logging
    context for distributed tracing.
  - Prometheus metrics: request/response instrumentation feeding the
    collectors in internal/metrics.
  - Identity: extraction of the authenticated portal user and group
    memberships from trusted reverse-proxy headers into the request
    context, where the OGC handlers read them for parameter injection.

The typical stack, outermost first:

	r.Use(middleware.RequestID())
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.Identity(cfg.Identity))

All middleware here is chi-compatible (func(http.Handler) http.Handler)
and thread-safe: request IDs live in immutable contexts and metrics use
atomic collectors.

Identity headers are trusted as-is. The gateway is designed to sit
behind an authenticating reverse proxy that strips client-supplied
copies of those headers; deploying it without one leaves identity
spoofable, which only widens data visibility (filters are additive).
*/
package middleware
