// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config is the root service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Services ServicesConfig `koanf:"services"`
	Backend  BackendConfig  `koanf:"backend"`
	Cache    CacheConfig    `koanf:"cache"`
	Identity IdentityConfig `koanf:"identity"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// BaseURL is the externally visible portal URL used when rewriting
	// xlink:href references back through the portal.
	BaseURL string `koanf:"base_url"`

	// ProjectsPath is the repository/project registry file.
	ProjectsPath string `koanf:"projects_path"`
}

// ServicesConfig carries the global service-level WMS limits, used only
// when a project does not define its own. Values are strings so that
// "unset" (empty) stays distinguishable from any numeric value; an
// empty effective wmsMaxHeight disables size enforcement entirely.
type ServicesConfig struct {
	WMSMaxWidth  string `koanf:"wms_max_width"`
	WMSMaxHeight string `koanf:"wms_max_height"`

	// MediaEndpoint is the portal endpoint media references are
	// rewritten to.
	MediaEndpoint string `koanf:"media_endpoint"`

	// LoginFilterOverride mirrors the historical
	// lizmap.tools.loginFilteredLayers.override flag. Read and passed
	// through to the filter merger; see ogc.MergeLoginFilters.
	LoginFilterOverride bool `koanf:"login_filter_override"`
}

// BackendConfig points at the two downstream request paths: the
// cache-fronted tile path and the direct map engine.
type BackendConfig struct {
	// WebURL is the cache-fronted endpoint serving tile-sized requests.
	WebURL string `koanf:"web_url"`

	// GISURL is the direct map engine endpoint.
	GISURL string `koanf:"gis_url"`

	// Timeout bounds a single backend call.
	Timeout time.Duration `koanf:"timeout"`

	// BreakerDisabled turns off the circuit breaker wrapper, for test
	// environments only.
	BreakerDisabled bool `koanf:"breaker_disabled"`
}

// CacheConfig selects and configures the response cache driver. An
// empty Driver disables caching; the cache policy then routes every
// request to a live client.
type CacheConfig struct {
	// Driver is one of "", "memory", "badger", "redis".
	Driver string `koanf:"driver"`

	// TTL is the response cache entry lifetime.
	TTL time.Duration `koanf:"ttl"`

	// Path is the on-disk directory for the badger driver.
	Path string `koanf:"path"`

	// RedisAddr and RedisDB configure the redis driver.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// IdentityConfig names the trusted reverse-proxy headers the identity
// middleware reads the current user and group list from.
type IdentityConfig struct {
	UserHeader   string `koanf:"user_header"`
	GroupsHeader string `koanf:"groups_header"`
}

// SecurityConfig holds the HTTP hardening knobs.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// validDrivers lists accepted cache driver names; empty disables.
var validDrivers = map[string]bool{"": true, "memory": true, "badger": true, "redis": true}

// Validate checks the configuration for inconsistencies that would
// only surface later at request time. A missing wmsMaxHeight is NOT an
// error: it is the documented "no height bound configured" state.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Backend.GISURL == "" {
		problems = append(problems, "backend.gis_url is required")
	}
	if c.Backend.WebURL == "" {
		problems = append(problems, "backend.web_url is required")
	}
	if !validDrivers[c.Cache.Driver] {
		problems = append(problems, fmt.Sprintf("cache.driver %q unknown (want memory, badger, redis or empty)", c.Cache.Driver))
	}
	if c.Cache.Driver == "badger" && c.Cache.Path == "" {
		problems = append(problems, "cache.path is required for the badger driver")
	}
	if c.Cache.Driver == "redis" && c.Cache.RedisAddr == "" {
		problems = append(problems, "cache.redis_addr is required for the redis driver")
	}
	for _, limit := range []struct{ name, value string }{
		{"services.wms_max_width", c.Services.WMSMaxWidth},
		{"services.wms_max_height", c.Services.WMSMaxHeight},
	} {
		if limit.value == "" {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(limit.value)); err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("%s %q is not a positive integer", limit.name, limit.value))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
