// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/cartoproxy/internal/models"
)

// Outbound parameter names injected by the builder. The identity pair
// is consumed by server-side access-control plugins on the map engine
// and must always be present, even when empty.
const (
	ParamMap        = "map"
	ParamUser       = "Lizmap_User"
	ParamUserGroups = "Lizmap_User_Groups"
	ParamFilter     = "filter"
)

// Params is a string-keyed OGC parameter mapping. Key presence is
// meaningful: an absent key and an empty value are different states
// (the filter contract depends on the distinction), so callers must use
// Set/Delete rather than writing empty strings to mean "unset".
//
// OGC parameter names are case-insensitive on lookup per convention,
// but Params preserves the original key casing for the outbound
// request.
type Params map[string]string

// NewParams builds a Params map from parsed URL values. Only the first
// value of repeated keys is kept, matching how the map engine reads
// its query string.
func NewParams(values url.Values) Params {
	p := make(Params, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			p[key] = vals[0]
		}
	}
	return p
}

// Get returns the value for name using case-insensitive key matching.
// The boolean reports key presence, distinguishing absent from empty.
func (p Params) Get(name string) (string, bool) {
	if v, ok := p[name]; ok {
		return v, true
	}
	for k, v := range p {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Value returns the value for name, or empty string when absent.
func (p Params) Value(name string) string {
	v, _ := p.Get(name)
	return v
}

// IntValue parses the named parameter as an integer, returning 0 for
// absent or malformed values.
func (p Params) IntValue(name string) int {
	v, ok := p.Get(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// Set stores a value under name, replacing any existing key that
// matches case-insensitively so the map never carries duplicates that
// differ only in case.
func (p Params) Set(name, value string) {
	for k := range p {
		if strings.EqualFold(k, name) && k != name {
			delete(p, k)
		}
	}
	p[name] = value
}

// Delete removes name under case-insensitive matching.
func (p Params) Delete(name string) {
	for k := range p {
		if strings.EqualFold(k, name) {
			delete(p, k)
		}
	}
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Encode renders the parameters as a canonical URL query string with
// keys sorted, suitable both for the backend request and for cache key
// derivation.
func (p Params) Encode() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[k]))
	}
	return b.String()
}

// IsGetMap reports whether the request parameter identifies a get-map
// style request, case-insensitively.
func (p Params) IsGetMap() bool {
	return strings.EqualFold(p.Value("request"), "getmap")
}

// BuildParameters assembles the outbound parameter set from the raw
// inbound parameters, the project configuration, and the current
// identity.
//
// The identity parameters are always injected, defaulting to empty
// strings for anonymous users; omitting them would disable per-user
// restrictions on the engine side, so they are never dropped. The map
// path is set only when the project resolves one. For get-map requests
// on projects with login filters the merged filter is set; when the
// merge produces nothing the filter key stays absent rather than being
// set to an empty string.
func BuildParameters(raw Params, project *models.Project, ident models.Identity, filterOverride bool) Params {
	out := raw.Clone()

	if project.MapPath != "" {
		out.Set(ParamMap, project.MapPath)
	}

	out.Set(ParamUser, ident.UserName)
	out.Set(ParamUserGroups, ident.GroupList())

	if out.IsGetMap() && project.HasLoginFilters() {
		existing := out.Value(ParamFilter)
		if merged, ok := MergeLoginFilters(existing, project.LoginFilters, filterOverride); ok {
			out.Set(ParamFilter, merged)
		}
	}

	return out
}
