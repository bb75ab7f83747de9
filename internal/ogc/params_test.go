// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"net/url"
	"testing"

	"github.com/tomtom215/cartoproxy/internal/models"
)

func TestParamsGetCaseInsensitive(t *testing.T) {
	p := Params{"SERVICE": "WMS", "Request": "GetMap"}

	if v, ok := p.Get("service"); !ok || v != "WMS" {
		t.Errorf("Get(service) = (%q, %v)", v, ok)
	}
	if v, ok := p.Get("REQUEST"); !ok || v != "GetMap" {
		t.Errorf("Get(REQUEST) = (%q, %v)", v, ok)
	}
	if _, ok := p.Get("version"); ok {
		t.Error("Get(version) should report absence")
	}
}

func TestParamsAbsentVersusEmpty(t *testing.T) {
	p := Params{"filter": ""}

	if v, ok := p.Get("filter"); !ok || v != "" {
		t.Errorf("empty value must still be present: (%q, %v)", v, ok)
	}
	p.Delete("filter")
	if _, ok := p.Get("filter"); ok {
		t.Error("deleted key must be absent")
	}
}

func TestParamsSetDedupesCaseVariants(t *testing.T) {
	p := Params{"FILTER": "a:b"}
	p.Set("filter", "c:d")

	if len(p) != 1 {
		t.Fatalf("expected 1 key, got %d: %v", len(p), p)
	}
	if v := p.Value("Filter"); v != "c:d" {
		t.Errorf("value = %q", v)
	}
}

func TestParamsIntValue(t *testing.T) {
	p := Params{"height": "351", "width": " 256 ", "bad": "12px"}

	if got := p.IntValue("height"); got != 351 {
		t.Errorf("height = %d", got)
	}
	if got := p.IntValue("width"); got != 256 {
		t.Errorf("width = %d", got)
	}
	if got := p.IntValue("bad"); got != 0 {
		t.Errorf("malformed value = %d, want 0", got)
	}
	if got := p.IntValue("absent"); got != 0 {
		t.Errorf("absent value = %d, want 0", got)
	}
}

func TestParamsEncodeCanonical(t *testing.T) {
	p := Params{"b": "2", "a": "1", "c": "x y"}

	if got := p.Encode(); got != "a=1&b=2&c=x+y" {
		t.Errorf("Encode() = %q", got)
	}
	// Same content, different construction order: identical encoding.
	q := Params{"c": "x y", "a": "1", "b": "2"}
	if p.Encode() != q.Encode() {
		t.Error("encoding must be order-independent")
	}
}

func TestNewParamsKeepsFirstValue(t *testing.T) {
	p := NewParams(url.Values{"layers": {"parks", "roads"}})
	if got := p.Value("layers"); got != "parks" {
		t.Errorf("layers = %q", got)
	}
}

func TestIsGetMap(t *testing.T) {
	tests := []struct {
		request string
		want    bool
	}{
		{"GetMap", true},
		{"GETMAP", true},
		{"getmap", true},
		{"GetFeatureInfo", false},
		{"", false},
	}
	for _, tt := range tests {
		p := Params{"request": tt.request}
		if got := p.IsGetMap(); got != tt.want {
			t.Errorf("IsGetMap(%q) = %v", tt.request, got)
		}
	}
}

func TestBuildParametersAlwaysInjectsIdentity(t *testing.T) {
	project := &models.Project{Key: "nature", RepositoryKey: "demo", MapPath: "/srv/nature.qgs"}

	out := BuildParameters(Params{"SERVICE": "WMS"}, project, models.Identity{}, false)

	if v, ok := out.Get(ParamUser); !ok || v != "" {
		t.Errorf("anonymous %s = (%q, %v), want present empty", ParamUser, v, ok)
	}
	if v, ok := out.Get(ParamUserGroups); !ok || v != "" {
		t.Errorf("anonymous %s = (%q, %v), want present empty", ParamUserGroups, v, ok)
	}
	if v := out.Value(ParamMap); v != "/srv/nature.qgs" {
		t.Errorf("map = %q", v)
	}
}

func TestBuildParametersIdentityValues(t *testing.T) {
	project := &models.Project{Key: "nature", RepositoryKey: "demo"}
	ident := models.Identity{UserName: "alice", Groups: []string{"editors", "viewers"}}

	out := BuildParameters(Params{}, project, ident, false)

	if v := out.Value(ParamUser); v != "alice" {
		t.Errorf("%s = %q", ParamUser, v)
	}
	if v := out.Value(ParamUserGroups); v != "editors, viewers" {
		t.Errorf("%s = %q", ParamUserGroups, v)
	}
}

func TestBuildParametersMapOnlyWhenResolved(t *testing.T) {
	project := &models.Project{Key: "nature", RepositoryKey: "demo"}

	out := BuildParameters(Params{}, project, models.Identity{}, false)
	if _, ok := out.Get(ParamMap); ok {
		t.Error("map must stay absent when the project has no map path")
	}
}

func TestBuildParametersFilterMerge(t *testing.T) {
	project := &models.Project{
		Key:           "nature",
		RepositoryKey: "demo",
		LoginFilters: []models.LoginFilter{
			{Layer: "parcels", Expression: `"owner" = 'alice'`},
		},
	}

	tests := []struct {
		name       string
		raw        Params
		wantFilter string
		wantSet    bool
	}{
		{
			name:       "getmap gets merged filter",
			raw:        Params{"request": "GetMap"},
			wantFilter: `parcels:"owner" = 'alice'`,
			wantSet:    true,
		},
		{
			name:       "existing entry preserved, new appended",
			raw:        Params{"request": "GetMap", "filter": "roads:type='a'"},
			wantFilter: `roads:type='a';parcels:"owner" = 'alice'`,
			wantSet:    true,
		},
		{
			name:    "non-getmap untouched",
			raw:     Params{"request": "GetFeatureInfo"},
			wantSet: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildParameters(tt.raw, project, models.Identity{}, false)
			v, ok := out.Get(ParamFilter)
			if ok != tt.wantSet {
				t.Fatalf("filter present = %v, want %v", ok, tt.wantSet)
			}
			if tt.wantSet && v != tt.wantFilter {
				t.Errorf("filter = %q, want %q", v, tt.wantFilter)
			}
		})
	}
}

func TestBuildParametersNoFiltersLeavesFilterAbsent(t *testing.T) {
	project := &models.Project{Key: "nature", RepositoryKey: "demo"}

	out := BuildParameters(Params{"request": "GetMap"}, project, models.Identity{}, false)
	if _, ok := out.Get(ParamFilter); ok {
		t.Error("filter must stay absent when the project has no login filters")
	}
}

func TestBuildParametersDoesNotMutateInput(t *testing.T) {
	raw := Params{"SERVICE": "WMS"}
	project := &models.Project{Key: "nature", RepositoryKey: "demo", MapPath: "/srv/nature.qgs"}

	BuildParameters(raw, project, models.Identity{UserName: "alice"}, false)

	if len(raw) != 1 {
		t.Errorf("input params mutated: %v", raw)
	}
}
