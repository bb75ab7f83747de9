// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/tomtom215/cartoproxy/internal/models"
)

// DefaultMediaEndpoint is the portal endpoint media references are
// rewritten to when none is configured.
const DefaultMediaEndpoint = "getMedia"

// hrefPattern matches every xlink:href attribute occurrence regardless
// of surrounding element, nesting depth, or value (including empty).
// A narrow pattern matcher is used instead of an XML parser on purpose:
// the rewritten documents must stay byte-identical outside the matched
// attributes.
var hrefPattern = regexp.MustCompile(`xlink:href=".*?"`)

// mediaPattern matches src= or href= attribute values referencing a
// path ending in media/<filename>.<ext> or ../media/<filename>.<ext>.
// At most one parent-directory hop is recognized, the filename needs a
// dot, and the extension needs at least two characters; bare directory
// references never match. Capture groups: attribute name with "=",
// opening quote, relative path, closing quote.
var mediaPattern = regexp.MustCompile(`((?:src|href)=)(["'])((?:\.\./)?media/[^"']+\.\w\w+)(["'])`)

// xmlEscapeURL escapes a URL for embedding in an XML attribute value.
func xmlEscapeURL(u string) string {
	return strings.ReplaceAll(u, "&", "&amp;")
}

// ServiceURL builds the portal-facing service URL for a repository and
// project, the fullURL handed to RewriteHrefs.
func ServiceURL(baseURL, repositoryKey, projectKey string) string {
	return baseURL + "?repository=" + url.QueryEscape(repositoryKey) +
		"&project=" + url.QueryEscape(projectKey)
}

// RewriteHrefs rewrites every xlink:href reference in a capability or
// context document so clients route back through the portal instead of
// reaching the internal map engine paths the engine advertises.
//
// Only XML/text bodies are scanned; binary bodies and bodies without
// any xlink:href occurrence pass through unchanged, as do the status
// code and mime type.
//
// COMPATIBILITY: each rewritten value carries a trailing doubled
// separator, rendered XML-escaped as "&amp;&amp;". The artifact comes
// from how the historical URL assembly appended an always-present but
// empty trailing parameter, and downstream clients depend on the exact
// bytes. Preserve it verbatim.
func RewriteHrefs(resp models.OGCResponse, fullURL string) models.OGCResponse {
	if !resp.IsTextual() {
		return resp
	}

	replacement := `xlink:href="` + xmlEscapeURL(fullURL) + `&amp;&amp;"`
	body := hrefPattern.ReplaceAllLiteralString(resp.Body, replacement)

	return models.OGCResponse{
		StatusCode: resp.StatusCode,
		MimeType:   resp.MimeType,
		Body:       body,
	}
}

// RewriteMediaURLs rewrites media references embedded in an HTML
// fragment (feature-info maptips and the like) into the portal's media
// endpoint, so the files resolve through the portal instead of leaking
// relative engine paths.
//
// Each src= or href= value pointing into a media/ directory becomes
// <endpoint>?path=<originalRelativePath>, preserving the attribute
// name and quoting style. Multiple references in one fragment are
// rewritten independently. Fragments without media references are
// returned unchanged.
func RewriteMediaURLs(fragment, endpoint string) string {
	if endpoint == "" {
		endpoint = DefaultMediaEndpoint
	}
	return mediaPattern.ReplaceAllString(fragment, "${1}${2}"+endpoint+"?path=${3}${4}")
}
