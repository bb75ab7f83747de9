// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package logging provides centralized zerolog-based structured logging
// for Cartoproxy.
//
// The package exposes a single global logger configured once at
// startup, with JSON output for production and a console format for
// development, plus context-aware logging that propagates request and
// correlation IDs from the HTTP middleware into every log line.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("repository", repo).Msg("Request mediated")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Cache lookup failed")
//
// Always terminate log chains with .Msg() or .Send(); a chain without
// a terminator is never emitted. Prefer structured fields over
// Msgf-style formatting.
//
// # Thread Safety
//
// All exported functions are safe for concurrent use; the global
// logger is guarded by a sync.RWMutex for reconfiguration.
package logging
