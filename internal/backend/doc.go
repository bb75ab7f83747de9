// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package backend implements the HTTP clients that carry mediated OGC
// requests to the map engine endpoints.
//
// Two endpoints exist per deployment: the web endpoint sits behind the
// tile cache and serves browser-sized requests, the GIS endpoint talks
// to the map engine directly for desktop-client requests. Both are
// plain HTTP GET clients returning the backend response verbatim
// (status, mime type, body) with no retries and no error mapping;
// transport failures surface to the mediator as errors.
//
// BreakerClient wraps either client with a circuit breaker
// (sony/gobreaker) so a struggling map engine sheds load instead of
// accumulating blocked requests.
package backend
