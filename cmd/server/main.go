// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/travelrec/internal/api"
	"github.com/tomtom215/travelrec/internal/config"
	"github.com/tomtom215/travelrec/internal/logging"
	"github.com/tomtom215/travelrec/internal/recommend"
	"github.com/tomtom215/travelrec/internal/snapshot"
	"github.com/tomtom215/travelrec/internal/supervisor"
	"github.com/tomtom215/travelrec/internal/supervisor/services"
)

const (
	initialLoadTimeout = 2 * time.Minute
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("dataset_format", cfg.Dataset.Format).
		Str("dataset_path", cfg.Dataset.Path).
		Msg("Starting Travelrec with supervisor tree")

	var store *snapshot.Store
	if cfg.Snapshot.Enabled {
		store, err = snapshot.Open(buildSnapshotConfig(cfg))
		if err != nil {
			// Snapshots only save work on restart; run without them.
			logging.Warn().Err(err).Str("path", cfg.Snapshot.Path).Msg("Failed to open snapshot store, memoization disabled")
			store = nil
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing snapshot store")
				}
			}()
			logging.Info().
				Str("path", cfg.Snapshot.Path).
				Bool("in_memory", cfg.Snapshot.InMemory).
				Int("retain", cfg.Snapshot.Retain).
				Msg("Snapshot store opened")
		}
	} else {
		logging.Info().Msg("Snapshot memoization disabled (SNAPSHOT_ENABLED=false)")
	}

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	cat, err := initCatalog(cfg, store, engine, logging.WithComponent("catalog"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure catalog")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	table, err := cat.Load(loadCtx)
	loadCancel()
	switch {
	case err != nil:
		logging.Warn().Err(err).Msg("Initial dataset load interrupted")
	case !table.Available():
		logging.Warn().Str("source", table.Source()).Msg("Dataset unavailable, serving degraded until a reload succeeds")
	default:
		logging.Info().
			Int("countries", len(table.Profiles())).
			Int("cities", table.Enrichment().Len()).
			Bool("memoized", table.Memoized()).
			Msg("Dataset loaded")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*); set specific origins in production")
	}

	handler := api.NewHandler(cat, engine)
	if store != nil {
		handler.SetSnapshotLister(store)
	}

	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server added to supervisor tree")

	if cfg.Dataset.ReloadInterval > 0 {
		tree.AddDataService(services.NewCatalogReloadService(cat, services.CatalogReloadConfig{
			Interval: cfg.Dataset.ReloadInterval,
		}, logging.WithComponent("reload")))
		logging.Info().Dur("interval", cfg.Dataset.ReloadInterval).Msg("Periodic dataset reload enabled")
	}

	if store != nil {
		tree.AddDataService(services.NewSnapshotMaintenanceService(store, cfg.Snapshot.GCInterval, logging.WithComponent("snapshot")))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
