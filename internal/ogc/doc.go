// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package ogc implements the OGC request/response mediation core.
//
// The package mediates between web map clients and a backend WMS/WFS/
// WMTS map engine. For each inbound request it:
//
//  1. Builds the outbound parameter set, injecting the current user and
//     group memberships and merging per-layer login filters
//     (params.go, loginfilter.go).
//  2. Applies the image-size gate (sizeguard.go) and the cache
//     admission policy that selects the cache-fronted or direct engine
//     client (cachepolicy.go).
//  3. Issues the backend call through the selected client, consulting
//     the response cache for eligible requests (mediator.go).
//  4. Rewrites xlink:href references in capability documents and
//     media paths in feature-info fragments so the portal stays in the
//     request path (rewrite.go).
//
// Every decision function in this package is pure: configuration is
// passed in explicitly, nothing here touches ambient global state, and
// concurrent requests need no coordination. The only blocking
// operations are the backend and cache calls made by the Mediator.
//
// # Compatibility
//
// Two behaviors are preserved verbatim for backward compatibility even
// though they look like quirks; see the comments on
// CheckMaximumWidthHeight and RewriteHrefs before "fixing" either.
package ogc
