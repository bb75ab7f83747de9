// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/models"
)

const identityKey contextKey = "identity"

// Identity extracts the authenticated portal user from the configured
// reverse-proxy headers into the request context. Absent headers yield
// an anonymous identity (empty user name, no groups); the OGC handlers
// inject that verbatim into backend parameters.
func Identity(cfg config.IdentityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := models.Identity{
				UserName: r.Header.Get(cfg.UserHeader),
				Groups:   splitGroups(r.Header.Get(cfg.GroupsHeader)),
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity stored by the Identity
// middleware, or a zero-value anonymous identity.
func IdentityFromContext(ctx context.Context) models.Identity {
	if ident, ok := ctx.Value(identityKey).(models.Identity); ok {
		return ident
	}
	return models.Identity{}
}

// splitGroups parses a comma-separated group header, trimming
// whitespace and dropping empty entries.
func splitGroups(header string) []string {
	if header == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}
