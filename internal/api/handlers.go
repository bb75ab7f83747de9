// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cartoproxy/internal/models"
)

// healthData is the payload of the health endpoint.
type healthData struct {
	Service      string `json:"service"`
	Repositories int    `json:"repositories"`
	CacheDriver  string `json:"cache_driver,omitempty"`
}

// HandleHealth reports gateway liveness and registry size.
func (rt *Router) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ok",
		Data: healthData{
			Service:      "cartoproxy",
			Repositories: rt.registry.RepositoryCount(),
			CacheDriver:  rt.cfg.Cache.Driver,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HandleHealthLive is the Kubernetes-style liveness probe. It returns
// 200 whenever the process is alive, regardless of dependencies.
func (rt *Router) HandleHealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ok",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(rt.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HandleHealthReady is the Kubernetes-style readiness probe. It returns
// 200 when the registry is loaded and the configured cache driver
// answers a probe read, 503 otherwise. A nil store (caching disabled)
// counts as ready.
func (rt *Router) HandleHealthReady(w http.ResponseWriter, r *http.Request) {
	cacheReady := true
	if rt.store != nil {
		if _, _, err := rt.store.Get(r.Context(), "health:probe"); err != nil {
			cacheReady = false
		}
	}
	ready := rt.registry != nil && cacheReady

	statusCode := http.StatusOK
	status := "ok"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"registry_loaded": rt.registry != nil,
			"cache_ready":     cacheReady,
			"ready_to_serve":  ready,
			"uptime":          time.Since(rt.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
