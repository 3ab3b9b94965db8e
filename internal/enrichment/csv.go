// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package enrichment

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/travelrec/internal/logging"
)

// ErrUnavailable is returned when the enrichment file cannot be read.
var ErrUnavailable = errors.New("enrichment data unavailable")

// headerAliases maps accepted header names to the canonical columns.
var headerAliases = map[string]string{
	"country":     "country",
	"pais":        "country",
	"país":        "country",
	"city":        "city",
	"ciudad":      "city",
	"hotel_count": "hotel_count",
	"hotels":      "hotel_count",
	"hoteles":     "hotel_count",
}

// ParseCSV reads enrichment rows from r. Rows with a missing city or a
// hotel count that is not a non-negative number are skipped.
func ParseCSV(r io.Reader) ([]City, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(3); err == nil && bytes.Equal(prefix, []byte{0xEF, 0xBB, 0xBF}) {
		if _, err := br.Discard(3); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, 3)
	for i, h := range header {
		if col, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[col] = i
		}
	}
	for _, required := range []string{"country", "city", "hotel_count"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []City
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		hotels, ok := parseHotelCount(field("hotel_count"))
		if !ok {
			continue
		}
		rows = append(rows, City{
			Country:    field("country"),
			City:       field("city"),
			HotelCount: hotels,
		})
	}
	return rows, nil
}

// parseHotelCount accepts integers and integral floats such as "12.0".
func parseHotelCount(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// LoadFile reads and indexes the CSV at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrUnavailable, path, err)
	}
	return NewTable(rows), nil
}

// Load is LoadFile with soft failure: an empty path yields an empty table
// silently, and a read error yields an empty table and a warning.
func Load(ctx context.Context, path string) *Table {
	if path == "" {
		return Empty()
	}

	t, err := LoadFile(path)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("path", path).
			Msg("city enrichment unavailable, continuing without it")
		return Empty()
	}

	logging.Ctx(ctx).Info().
		Str("path", path).
		Int("cities", t.Len()).
		Int("countries", len(t.countries)).
		Msg("city enrichment loaded")
	return t
}
