// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakySource fails while err is set and counts reads.
type flakySource struct {
	mu    sync.Mutex
	err   error
	reads int
}

func (f *flakySource) Name() string { return "flaky" }

func (f *flakySource) Records(context.Context) ([]CountryYearRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return []CountryYearRecord{{Country: "Spain", Year: 2019, TourismArrivals: Float64(1e6)}}, nil
}

func (f *flakySource) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	src := &flakySource{err: errors.New("volume not mounted")}
	b := NewBreakerSource(src, BreakerConfig{Name: "test-open", Failures: 2, Timeout: time.Hour})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Records(ctx)
		require.Error(t, err)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.Records(ctx)
	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.Equal(t, 2, src.reads, "open circuit must not read the source")
}

func TestBreakerSource_RecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	src := &flakySource{err: errors.New("locked")}
	b := NewBreakerSource(src, BreakerConfig{Name: "test-recover", Failures: 1, Timeout: 20 * time.Millisecond})
	ctx := context.Background()

	_, err := b.Records(ctx)
	require.Error(t, err)
	require.Equal(t, "open", b.State())

	src.setErr(nil)
	time.Sleep(40 * time.Millisecond)

	records, err := b.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "closed", b.State())
}

func TestBreakerSource_CancellationDoesNotTrip(t *testing.T) {
	t.Parallel()

	src := &flakySource{err: context.Canceled}
	b := NewBreakerSource(src, BreakerConfig{Name: "test-cancel", Failures: 1})

	for i := 0; i < 3; i++ {
		_, err := b.Records(context.Background())
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", b.State())
	assert.Equal(t, 3, src.reads)
}

func TestBreakerSource_DefaultsAndName(t *testing.T) {
	t.Parallel()

	b := NewBreakerSource(&CSVSource{Path: "data.csv"}, BreakerConfig{})
	assert.Equal(t, "csv:data.csv", b.Name())
	assert.Equal(t, "dataset-source", b.name)
	assert.Equal(t, "closed", b.State())
}

func TestBreakerSource_LoadProfilesDegrades(t *testing.T) {
	t.Parallel()

	src := &flakySource{err: errors.New("gone")}
	b := NewBreakerSource(src, BreakerConfig{Name: "test-load", Failures: 1, Timeout: time.Hour})

	first := LoadProfiles(context.Background(), b, nil)
	second := LoadProfiles(context.Background(), b, nil)

	assert.False(t, first.Available)
	assert.False(t, second.Available)
	assert.NotNil(t, second.Profiles)
	assert.Equal(t, 1, src.reads)
}
