// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"testing"

	"github.com/tomtom215/cartoproxy/internal/models"
)

func TestMergeLoginFilters(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		filters  []models.LoginFilter
		want     string
		wantOK   bool
	}{
		{
			name:     "append to empty filter",
			existing: "",
			filters:  []models.LoginFilter{{Layer: "parcels", Expression: "owner='a'"}},
			want:     "parcels:owner='a'",
			wantOK:   true,
		},
		{
			name:     "existing layer wins",
			existing: "parcels:owner='explicit'",
			filters:  []models.LoginFilter{{Layer: "parcels", Expression: "owner='login'"}},
			want:     "parcels:owner='explicit'",
			wantOK:   true,
		},
		{
			name:     "new layers appended after existing in declaration order",
			existing: "roads:type='a'",
			filters: []models.LoginFilter{
				{Layer: "parcels", Expression: "owner='a'"},
				{Layer: "buildings", Expression: "zone='b'"},
			},
			want:   "roads:type='a';parcels:owner='a';buildings:zone='b'",
			wantOK: true,
		},
		{
			name:     "no filters and no existing yields nothing",
			existing: "",
			filters:  nil,
			wantOK:   false,
		},
		{
			name:     "existing alone survives",
			existing: "roads:type='a'",
			filters:  nil,
			want:     "roads:type='a'",
			wantOK:   true,
		},
		{
			name:     "expression with colons kept intact",
			existing: "",
			filters:  []models.LoginFilter{{Layer: "t", Expression: "ts > '2024-01-01T00:00:00'"}},
			want:     "t:ts > '2024-01-01T00:00:00'",
			wantOK:   true,
		},
		{
			name:     "entry without colon round-trips",
			existing: "bare",
			filters:  []models.LoginFilter{{Layer: "parcels", Expression: "x=1"}},
			want:     "bare:;parcels:x=1",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MergeLoginFilters(tt.existing, tt.filters, false)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("merged = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeLoginFiltersOverrideFlagHasNoEffect(t *testing.T) {
	filters := []models.LoginFilter{{Layer: "parcels", Expression: "owner='login'"}}
	existing := "parcels:owner='explicit'"

	plain, _ := MergeLoginFilters(existing, filters, false)
	override, _ := MergeLoginFilters(existing, filters, true)

	if plain != override {
		t.Errorf("override flag changed the merge: %q vs %q", plain, override)
	}
}

func TestParseFilterSkipsEmptyEntries(t *testing.T) {
	pairs := parseFilter("a:1;;b:2")
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs: %v", len(pairs), pairs)
	}
	if pairs[0].layer != "a" || pairs[1].layer != "b" {
		t.Errorf("pairs = %v", pairs)
	}
}
