// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/logging"
	"github.com/tomtom215/cartoproxy/internal/metrics"
)

// HandleMedia serves the media files referenced by rewritten
// feature-info fragments. The path parameter is the relative media
// path from the rewriter, resolved against the project directory; a
// single parent hop is legal there, but the result must stay inside
// the repository root.
func (rt *Router) HandleMedia(w http.ResponseWriter, r *http.Request) {
	req := owsRequest{
		Repository: chi.URLParam(r, "repository"),
		Project:    chi.URLParam(r, "project"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordMediaRequest(req.Repository, "bad_request")
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	repo, err := rt.registry.Repository(req.Repository)
	if err != nil {
		metrics.RecordMediaRequest(req.Repository, "not_found")
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Unknown repository", nil)
		return
	}
	project, err := rt.registry.Project(req.Repository, req.Project)
	if err != nil {
		if errors.Is(err, config.ErrProjectNotFound) {
			metrics.RecordMediaRequest(req.Repository, "not_found")
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Unknown project", nil)
			return
		}
		metrics.RecordMediaRequest(req.Repository, "error")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Registry lookup failed", err)
		return
	}

	mediaPath := r.URL.Query().Get("path")
	if mediaPath == "" {
		metrics.RecordMediaRequest(req.Repository, "bad_request")
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", ErrMissingPath.Error(), nil)
		return
	}

	target, err := resolveMediaPath(repo.RootPath, project.MapPath, mediaPath)
	if err != nil {
		metrics.RecordMediaRequest(req.Repository, "forbidden")
		logging.Ctx(r.Context()).Warn().
			Str("repository", sanitizeLogValue(req.Repository)).
			Str("path", sanitizeLogValue(mediaPath)).
			Msg("Rejected media path outside repository root")
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Media path not allowed", nil)
		return
	}

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		metrics.RecordMediaRequest(req.Repository, "not_found")
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Media file not found", nil)
		return
	}

	metrics.RecordMediaRequest(req.Repository, "ok")
	http.ServeFile(w, r, target)
}

// resolveMediaPath resolves a rewritten media path. The path is
// relative to the project file's directory (falling back to the
// repository root when the project has no map path under it); the
// resolved file must remain inside the repository root.
func resolveMediaPath(rootPath, mapPath, mediaPath string) (string, error) {
	root := filepath.Clean(rootPath)

	base := root
	if dir := filepath.Dir(mapPath); mapPath != "" && within(root, dir) {
		base = dir
	}

	target := filepath.Clean(filepath.Join(base, mediaPath))
	if !within(root, target) {
		return "", ErrPathEscapesRoot
	}
	return target, nil
}

// within reports whether path is root or inside it. Both arguments
// must already be cleaned.
func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
