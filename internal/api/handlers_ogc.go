// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/logging"
	"github.com/tomtom215/cartoproxy/internal/metrics"
	"github.com/tomtom215/cartoproxy/internal/middleware"
	"github.com/tomtom215/cartoproxy/internal/ogc"
)

// owsRequest captures the path parameters of an OGC request for
// validation before the registry lookup.
type owsRequest struct {
	Repository string `validate:"required,mapkey"`
	Project    string `validate:"required,mapkey"`
}

// HandleOWS mediates one OGC request. Query parameters and, for POST,
// form-encoded body parameters feed the parameter builder; the
// backend response is written raw.
func (rt *Router) HandleOWS(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := owsRequest{
		Repository: chi.URLParam(r, "repository"),
		Project:    chi.URLParam(r, "project"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	project, err := rt.registry.Project(req.Repository, req.Project)
	if err != nil {
		if errors.Is(err, config.ErrRepositoryNotFound) || errors.Is(err, config.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Unknown repository or project", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Registry lookup failed", err)
		return
	}

	// ParseForm merges the query string with a form-encoded POST body.
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Malformed request parameters", err)
		return
	}
	params := ogc.NewParams(r.Form)
	ident := middleware.IdentityFromContext(r.Context())

	resp, err := rt.mediator.Handle(r.Context(), project, params, ident)
	if err != nil {
		metrics.RecordOGCRequest(req.Repository, req.Project, "bad_gateway", time.Since(start))
		logging.Ctx(r.Context()).Error().Err(err).
			Str("repository", sanitizeLogValue(req.Repository)).
			Str("project", sanitizeLogValue(req.Project)).
			Msg("Backend mediation failed")
		respondError(w, http.StatusBadGateway, "BACKEND_ERROR", "Map engine request failed", nil)
		return
	}

	metrics.RecordOGCRequest(req.Repository, req.Project, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.MimeType != "" {
		w.Header().Set("Content-Type", resp.MimeType)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write OGC response")
	}
}
