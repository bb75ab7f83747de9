// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Command server runs the Cartoproxy gateway: it loads configuration
// and the repository registry, opens the response cache, builds the
// backend map clients, and serves the HTTP surface until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cartoproxy/internal/api"
	"github.com/tomtom215/cartoproxy/internal/backend"
	"github.com/tomtom215/cartoproxy/internal/cache"
	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/logging"
	"github.com/tomtom215/cartoproxy/internal/ogc"
)

// shutdownTimeout bounds graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	registry, err := config.LoadRegistry(cfg.Server.ProjectsPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Server.ProjectsPath).Msg("Failed to load project registry")
	}
	logging.Info().Int("repositories", registry.RepositoryCount()).Msg("Project registry loaded")

	store, err := cache.Open(&cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Cache.Driver).Msg("Failed to open response cache")
	}
	if store != nil {
		defer store.Close()
		logging.Info().Str("driver", cfg.Cache.Driver).Msg("Response cache opened")
	}

	web := buildClient(cfg, cfg.Backend.WebURL, "web")
	gis := buildClient(cfg, cfg.Backend.GISURL, "gis")

	mediator := ogc.NewMediator(ogc.MediatorConfig{
		Services:       &cfg.Services,
		Web:            web,
		GIS:            gis,
		Store:          store,
		CacheTTL:       cfg.Cache.TTL,
		BaseURL:        cfg.Server.BaseURL,
		MediaEndpoint:  cfg.Services.MediaEndpoint,
		FilterOverride: cfg.Services.LoginFilterOverride,
	})

	router := api.NewRouter(cfg, registry, mediator, store)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Cartoproxy listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Shutdown complete")
}

// buildClient builds one backend client, wrapped with the circuit
// breaker unless disabled.
func buildClient(cfg *config.Config, url, kind string) ogc.MapClient {
	client := backend.NewHTTPClient(url, kind, cfg.Backend.Timeout)
	if cfg.Backend.BreakerDisabled {
		return client
	}
	return backend.NewBreakerClient(client, kind)
}
