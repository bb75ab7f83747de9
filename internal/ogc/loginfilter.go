// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"strings"

	"github.com/tomtom215/cartoproxy/internal/models"
)

// filterPair is one layer:expression entry of a filter parameter.
type filterPair struct {
	layer      string
	expression string
}

// parseFilter splits a filter parameter into ordered layer:expression
// pairs. Pairs are separated by ";", layer and expression by the first
// ":" (expressions may themselves contain colons). Entries without a
// colon are kept with an empty expression so a round trip preserves
// the original string.
func parseFilter(filter string) []filterPair {
	if filter == "" {
		return nil
	}

	parts := strings.Split(filter, ";")
	pairs := make([]filterPair, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		layer, expr, _ := strings.Cut(part, ":")
		pairs = append(pairs, filterPair{layer: layer, expression: expr})
	}
	return pairs
}

// encodeFilter renders pairs back into the wire format.
func encodeFilter(pairs []filterPair) string {
	entries := make([]string, len(pairs))
	for i, p := range pairs {
		entries[i] = p.layer + ":" + p.expression
	}
	return strings.Join(entries, ";")
}

// MergeLoginFilters extends an existing filter parameter with the
// project's per-layer login restriction rules. Returns the merged
// filter string and true, or ("", false) when nothing applies.
//
// Merging is additive, never overriding: a layer already present in
// the inbound filter keeps its explicitly supplied expression, and only
// layers absent from it are appended, after the existing entries and in
// declaration order. The original pair order is preserved.
//
// The override flag mirrors the lizmap.tools.loginFilteredLayers
// override setting. It is accepted and recorded here because the
// configuration carries it, but the merge outcome is identical either
// way: the explicitly supplied filter always wins.
func MergeLoginFilters(existing string, filters []models.LoginFilter, override bool) (string, bool) {
	_ = override

	pairs := parseFilter(existing)

	present := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		present[p.layer] = true
	}

	for _, lf := range filters {
		if present[lf.Layer] {
			continue
		}
		pairs = append(pairs, filterPair{layer: lf.Layer, expression: lf.Expression})
		present[lf.Layer] = true
	}

	if len(pairs) == 0 {
		return "", false
	}
	return encodeFilter(pairs), true
}
