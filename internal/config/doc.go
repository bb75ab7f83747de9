// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package config loads and validates the portal configuration.
//
// Configuration comes from two sources, both read once at startup and
// immutable afterwards:
//
//   - The service configuration (Config): server settings, backend map
//     engine endpoints, cache driver selection, logging, and the
//     service-level WMS fallbacks. Loaded via Koanf v2 with layered
//     precedence ENV > config file > built-in defaults.
//
//   - The repository/project registry (Registry): repositories,
//     projects, per-layer login filters and cache flags, loaded from a
//     projects YAML file. The registry is the mediation layer's
//     read-only view of project configuration; managing it belongs to
//     an external subsystem.
//
// Environment variable names map to koanf paths by lowercasing and
// replacing the first underscore group, e.g. SERVER_PORT -> server.port
// and BACKEND_GIS_URL -> backend.gis_url.
package config
