// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import "github.com/tomtom215/cartoproxy/internal/models"

// ClientKind selects which downstream client serves a request.
type ClientKind string

const (
	// ClientWeb is the cache-fronted request path: tile-sized requests
	// served through the HTTP/tile cache in front of the map engine.
	ClientWeb ClientKind = "web"

	// ClientGIS is the direct engine path: requests sent straight to
	// the live map-rendering backend, bypassing the cache.
	ClientGIS ClientKind = "gis"
)

// singleTileMaxHeight is the tallest request still considered a single
// tile. Anything taller is a composed map image and always goes to the
// direct engine client. Width is deliberately not part of the
// comparison.
const singleTileMaxHeight = 350

// UseCache decides cache eligibility and selects the downstream client.
//
// The client kind depends only on the requested height: above the
// single-tile threshold the request is routed to the direct engine
// client. Cache admission additionally requires a configured cache
// driver and a layer explicitly marked cached; oversized requests never
// hit the cache regardless of either.
func UseCache(layer *models.LayerConfig, params Params, cacheAvailable bool) (bool, ClientKind) {
	kind := ClientWeb
	if params.IntValue("height") > singleTileMaxHeight {
		kind = ClientGIS
	}

	use := kind == ClientWeb && cacheAvailable && layer != nil && layer.Cached
	return use, kind
}
