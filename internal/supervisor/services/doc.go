// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package services provides suture.Service wrappers for the long-running
// parts of Travelrec: the HTTP server, the periodic catalog reload and
// snapshot store maintenance. Each wrapper depends on a small interface
// rather than the concrete type, so the services are tested with doubles.
package services
