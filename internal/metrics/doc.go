// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package metrics defines the Prometheus collectors for the gateway.
//
// All collectors are registered with the default registry via promauto
// at package init and exposed on /metrics. Callers use the Record*
// helpers rather than touching collectors directly, except the circuit
// breaker gauges which the backend package drives from gobreaker state
// callbacks.
package metrics
