// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package models defines the shared data model for the mediation layer.
//
// The types here fall into two lifecycles:
//
//   - Configuration entities (Repository, Project, LoginFilter,
//     LayerConfig) are loaded once at startup and are read-only for the
//     duration of every request. They are safe for unsynchronized
//     concurrent reads.
//
//   - Per-request values (Identity, OGCResponse, the API envelope
//     types) are created and discarded within a single request's
//     lifetime and are never shared between requests.
//
// No type in this package persists cache state; cache storage belongs
// to the internal/cache drivers.
package models
