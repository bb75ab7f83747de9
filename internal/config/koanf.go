// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cartoproxy/config.yaml",
	"/etc/cartoproxy/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults
// load first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8130,
			Timeout:      30 * time.Second,
			BaseURL:      "http://localhost:8130/ows",
			ProjectsPath: "projects.yaml",
		},
		Services: ServicesConfig{
			WMSMaxWidth:         "",
			WMSMaxHeight:        "",
			MediaEndpoint:       "getMedia",
			LoginFilterOverride: false,
		},
		Backend: BackendConfig{
			WebURL:          "http://127.0.0.1:8080/cache",
			GISURL:          "http://127.0.0.1:8081/ows",
			Timeout:         60 * time.Second,
			BreakerDisabled: false,
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    24 * time.Hour,
			Path:   "/data/cache",
		},
		Identity: IdentityConfig{
			UserHeader:   "Remote-User",
			GroupsHeader: "Remote-Groups",
		},
		Security: SecurityConfig{
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration with layered sources (highest priority
// wins): environment variables, then the optional YAML config file,
// then built-in defaults. The result is validated before returning.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// SERVER_PORT -> server.port, BACKEND_GIS_URL -> backend.gis_url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sections the env transform recognizes as koanf prefixes.
var envSections = []string{
	"SERVER", "SERVICES", "BACKEND", "CACHE", "IDENTITY", "SECURITY", "LOGGING",
}

// envTransformFunc maps environment variable names onto koanf paths.
// The first matching section becomes the parent key and the remainder
// the child, so BACKEND_GIS_URL -> backend.gis_url. Variables outside
// the known sections map to an empty path and are dropped.
func envTransformFunc(s string) string {
	for _, section := range envSections {
		prefix := section + "_"
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return strings.ToLower(section) + "." + strings.ToLower(s[len(prefix):])
		}
	}
	return ""
}

// findConfigFile locates the config file: CONFIG_PATH first, then the
// default search paths. Empty string means run on defaults and env.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
