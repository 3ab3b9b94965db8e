// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/travelrec/internal/logging"
	"github.com/tomtom215/travelrec/internal/metrics"
)

// BreakerConfig configures a BreakerSource.
type BreakerConfig struct {
	// Name labels the breaker in logs and metrics.
	// Default: "dataset-source"
	Name string

	// Failures is the number of consecutive failed reads that opens the
	// circuit. Default: 3
	Failures uint32

	// Timeout is how long the circuit stays open before one trial read.
	// Default: 5m
	Timeout time.Duration
}

// BreakerSource wraps a Source with a circuit breaker. While the circuit is
// open, Records fails fast with ErrDataUnavailable instead of touching a
// source that has kept failing, such as a DuckDB file on an unmounted volume.
type BreakerSource struct {
	src  Source
	cb   *gobreaker.CircuitBreaker[[]CountryYearRecord]
	name string
}

var _ Source = (*BreakerSource)(nil)

// NewBreakerSource creates a BreakerSource around src.
func NewBreakerSource(src Source, cfg BreakerConfig) *BreakerSource {
	if cfg.Name == "" {
		cfg.Name = "dataset-source"
	}
	if cfg.Failures == 0 {
		cfg.Failures = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]CountryYearRecord](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,

		// Loads are rare, so trip on a run of failures rather than a ratio.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures < cfg.Failures {
				return false
			}
			logging.Warn().
				Str("breaker", cfg.Name).
				Uint32("consecutive_failures", counts.ConsecutiveFailures).
				Msg("opening dataset source circuit")
			return true
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), stateValue(to))
		},

		// A cancelled load says nothing about the source.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})

	return &BreakerSource{src: src, cb: cb, name: cfg.Name}
}

// Name implements Source. The wrapped source's name is kept so snapshots and
// logs do not change when the breaker is enabled.
func (b *BreakerSource) Name() string {
	return b.src.Name()
}

// Records implements Source.
func (b *BreakerSource) Records(ctx context.Context) ([]CountryYearRecord, error) {
	records, err := b.cb.Execute(func() ([]CountryYearRecord, error) {
		return b.src.Records(ctx)
	})

	switch {
	case err == nil:
		metrics.RecordBreakerCall(b.name, "success")
		return records, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerCall(b.name, "rejected")
		return nil, fmt.Errorf("%w: %s circuit open: %w", ErrDataUnavailable, b.name, err)
	default:
		metrics.RecordBreakerCall(b.name, "failure")
		return nil, err
	}
}

// State returns the current breaker state: closed, half-open or open.
func (b *BreakerSource) State() string {
	return b.cb.State().String()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
