// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"

	"github.com/tomtom215/travelrec/internal/logging"
)

// LoadResult is the outcome of reading and normalizing a source.
type LoadResult struct {
	Profiles []CountryProfile
	Checksum string
	Records  int
	// Available is false when the source could not be read.
	Available bool
	// Memoized is true when the profiles came from the Memo.
	Memoized bool
}

// NormalizerVersion identifies the rules Normalize applies. Bump it whenever
// Normalize changes its output, so tables memoized by an older build are
// not reused.
const NormalizerVersion = 1

// Memo stores normalized tables under MemoKey.
type Memo interface {
	Lookup(ctx context.Context, key string) ([]CountryProfile, bool)
	Store(ctx context.Context, key string, profiles []CountryProfile)
}

// MemoKey is the memo key for a dataset checksum under the current
// NormalizerVersion.
func MemoKey(checksum string) string {
	return "n" + strconv.Itoa(NormalizerVersion) + ":" + checksum
}

// LoadProfiles reads and normalizes src. Read failures are logged and
// surface as an empty, unavailable result rather than an error. When memo is
// non-nil, a table already normalized for the same checksum by the same
// NormalizerVersion is reused.
func LoadProfiles(ctx context.Context, src Source, memo Memo) LoadResult {
	records, err := src.Records(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("source", src.Name()).
			Msg("dataset unavailable, serving empty table")
		return LoadResult{Profiles: []CountryProfile{}}
	}

	result := LoadResult{
		Checksum:  Checksum(records),
		Records:   len(records),
		Available: true,
	}

	memoKey := MemoKey(result.Checksum)
	if memo != nil {
		if profiles, ok := memo.Lookup(ctx, memoKey); ok {
			result.Profiles = profiles
			result.Memoized = true
			logging.Ctx(ctx).Info().
				Str("source", src.Name()).
				Str("checksum", result.Checksum).
				Int("countries", len(profiles)).
				Msg("dataset unchanged, reusing normalized table")
			return result
		}
	}

	result.Profiles = Normalize(records)
	logging.Ctx(ctx).Info().
		Str("source", src.Name()).
		Int("records", len(records)).
		Int("countries", len(result.Profiles)).
		Msg("dataset normalized")

	if memo != nil {
		memo.Store(ctx, memoKey, result.Profiles)
	}
	return result
}

// Checksum returns a hex SHA-256 over a canonical encoding of records.
// It identifies the dataset for memoization of the normalized table.
func Checksum(records []CountryYearRecord) string {
	h := sha256.New()
	for i := range records {
		r := &records[i]
		writeField(h, r.Country)
		writeField(h, r.CountryCode)
		writeField(h, r.Region)
		writeField(h, strconv.Itoa(r.Year))
		for _, v := range []*float64{
			r.TourismReceipts, r.TourismArrivals, r.TourismDepartures,
			r.GDP, r.Inflation, r.Unemployment, r.CostPerTourist, r.AnnualGrowth,
		} {
			if v == nil {
				writeField(h, "null")
				continue
			}
			writeField(h, strconv.FormatFloat(*v, 'g', -1, 64))
		}
		_, _ = h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0x1f})
}
