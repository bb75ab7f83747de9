// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package models

import "strings"

// Identity is the read-only current-user fact supplied by the external
// authentication collaborator. The zero value is the anonymous user.
type Identity struct {
	// UserName is the authenticated user's login, empty for anonymous.
	UserName string `json:"user_name"`

	// Groups lists the user's group memberships, nil for anonymous.
	Groups []string `json:"groups"`
}

// IsAnonymous reports whether no user is authenticated.
func (i Identity) IsAnonymous() bool {
	return i.UserName == ""
}

// GroupList returns the group memberships joined for the
// Lizmap_User_Groups parameter. Empty string for anonymous users or
// users without groups.
func (i Identity) GroupList() string {
	return strings.Join(i.Groups, ", ")
}

// OGCResponse is the immutable status/mime/body triple produced by the
// backend map engine and consumed by the response rewriters.
type OGCResponse struct {
	StatusCode int    `json:"status_code"`
	MimeType   string `json:"mime_type"`
	Body       string `json:"body"`
}

// IsTextual reports whether the response body is XML or text and
// therefore eligible for href rewriting. Binary map tiles pass through
// untouched.
func (r OGCResponse) IsTextual() bool {
	mime := strings.ToLower(r.MimeType)
	return strings.Contains(mime, "xml") || strings.HasPrefix(mime, "text/")
}
