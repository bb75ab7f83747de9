// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

/*
Package api provides the HTTP surface of the gateway.

Routes:

	GET/POST /ows/{repository}/{project}    mediated OGC endpoint
	GET      /media/{repository}/{project}  media files from feature-info rewrites
	GET      /api/v1/health                 liveness and registry size
	GET      /metrics                       Prometheus exposition

The OGC endpoint is the core of the gateway: it validates the path
keys, resolves the project from the registry, folds query and form
parameters into the outbound parameter set, injects the caller's
identity, and hands off to the mediator. The backend's response is
relayed raw - status, mime type and body - so OGC clients see the map
engine's own protocol behavior; only capability hrefs and feature-info
media paths are rewritten on the way through.

Portal endpoints (health, errors) use the JSON envelope in
internal/models. Middleware factories for CORS and rate limiting wrap
the production-hardened go-chi/cors and go-chi/httprate packages; the
per-group limits differ because a single map view fans out into dozens
of tile requests.
*/
package api
