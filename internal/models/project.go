// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package models

// Repository groups map projects under a single key. The key scopes
// cache entries and portal URL construction; many projects belong to
// one repository.
type Repository struct {
	// Key is the unique repository identifier used in portal URLs and
	// cache key prefixes.
	Key string `koanf:"key" json:"key"`

	// Label is the human-readable repository name shown in logs.
	Label string `koanf:"label" json:"label"`

	// RootPath is the filesystem directory holding the repository's
	// project files and media/ directories.
	RootPath string `koanf:"root_path" json:"root_path"`
}

// LoginFilter restricts which features of a layer a user or group may
// see. Filters are declared per project and applied at request time by
// appending them to the outbound filter parameter.
type LoginFilter struct {
	// Layer is the layer name the filter applies to.
	Layer string `koanf:"layer" json:"layer"`

	// Expression is the filter expression forwarded to the map engine.
	Expression string `koanf:"expression" json:"expression"`
}

// LayerConfig carries per-layer mediation flags.
type LayerConfig struct {
	// Name is the layer name as it appears in OGC requests.
	Name string `koanf:"name" json:"name"`

	// Cached marks the layer eligible for cache-fronted service.
	Cached bool `koanf:"cached" json:"cached"`
}

// Project identifies one map configuration inside a repository. It is
// immutable for the duration of a request; only the configuration
// subsystem (out of scope here) ever mutates project definitions.
type Project struct {
	// Key is the project identifier inside its repository.
	Key string `koanf:"key" json:"key"`

	// RepositoryKey references the owning Repository.
	RepositoryKey string `koanf:"repository" json:"repository"`

	// MapPath is the map file path handed to the map engine via the
	// "map" parameter. When empty the project has no resolvable map and
	// the parameter is omitted from outbound requests.
	MapPath string `koanf:"map_path" json:"map_path"`

	// WMSMaxWidth and WMSMaxHeight are project-level size limits.
	// String-typed because "unset" (empty) is meaningful and distinct
	// from zero; when empty the service-level fallbacks apply.
	WMSMaxWidth  string `koanf:"wms_max_width" json:"wms_max_width"`
	WMSMaxHeight string `koanf:"wms_max_height" json:"wms_max_height"`

	// LoginFilters are the per-layer login restriction rules, in
	// declaration order. Order matters: merged filter entries are
	// appended in this order.
	LoginFilters []LoginFilter `koanf:"login_filters" json:"login_filters"`

	// Layers holds the per-layer mediation flags.
	Layers []LayerConfig `koanf:"layers" json:"layers"`
}

// Layer returns the LayerConfig for the given layer name, or nil when
// the project declares no configuration for it.
func (p *Project) Layer(name string) *LayerConfig {
	for i := range p.Layers {
		if p.Layers[i].Name == name {
			return &p.Layers[i]
		}
	}
	return nil
}

// HasLoginFilters reports whether the project declares any login
// restriction rules.
func (p *Project) HasLoginFilters() bool {
	return len(p.LoginFilters) > 0
}
