// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package supervisor provides process supervision for Travelrec using suture v4.

# Overview

	RootSupervisor ("travelrec")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogReloadService (if DATASET_RELOAD_INTERVAL > 0)
	│   └── SnapshotMaintenanceService (if SNAPSHOT_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. A failure in the data layer
never restarts the HTTP server, which keeps serving the last loaded catalog.

Supervisor events (start, stop, failure, backoff) are logged through
sutureslog, bridged to zerolog by logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogReloadService(cat, reloadCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
