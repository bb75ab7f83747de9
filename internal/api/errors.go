// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package api provides HTTP handlers for the gateway.
//
// errors.go - Common API error definitions
//
// This file contains sentinel errors for common API error conditions.
package api

import "errors"

// Common API errors
var (
	// ErrMissingPath indicates a media request without the path parameter
	ErrMissingPath = errors.New("path parameter is required")

	// ErrPathEscapesRoot indicates a media path resolving outside the
	// repository root
	ErrPathEscapesRoot = errors.New("media path escapes the repository root")
)
