// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MissingValue is the sentinel the World Bank export uses for empty cells.
const MissingValue = ".."

// Column names of the input dataset contract.
const (
	ColCountry           = "country"
	ColCountryCode       = "country_code"
	ColYear              = "year"
	ColTourismReceipts   = "tourism_receipts"
	ColTourismArrivals   = "tourism_arrivals"
	ColTourismDepartures = "tourism_departures"
	ColGDP               = "gdp"
	ColInflation         = "inflation"
	ColUnemployment      = "unemployment"
	ColRegion            = "region"
	ColCostPerTourist    = "cost_per_tourist"
	ColAnnualGrowth      = "annual_growth"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource reads records from a CSV file with a header row.
type CSVSource struct {
	Path string
}

// Name implements Source.
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// Records implements Source.
func (s *CSVSource) Records(ctx context.Context) ([]CountryYearRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrDataUnavailable, s.Path, err)
	}
	return records, nil
}

// ParseCSV decodes the dataset contract from r. Header names are trimmed
// and matched case-insensitively; unknown columns are ignored. Rows whose
// year cannot be parsed are skipped.
func ParseCSV(r io.Reader) ([]CountryYearRecord, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
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

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{ColCountry, ColYear} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var records []CountryYearRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		if rec, ok := recordFromFields(field); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// recordFromFields builds a record from a column lookup. The second return
// value is false when the year cannot be parsed.
func recordFromFields(field func(name string) string) (CountryYearRecord, bool) {
	year, ok := parseYear(strings.TrimSpace(field(ColYear)))
	if !ok {
		return CountryYearRecord{}, false
	}
	return CountryYearRecord{
		Country:           strings.TrimSpace(field(ColCountry)),
		CountryCode:       strings.TrimSpace(field(ColCountryCode)),
		Region:            strings.TrimSpace(field(ColRegion)),
		Year:              year,
		TourismReceipts:   ParseNullable(field(ColTourismReceipts)),
		TourismArrivals:   ParseNullable(field(ColTourismArrivals)),
		TourismDepartures: ParseNullable(field(ColTourismDepartures)),
		GDP:               ParseNullable(field(ColGDP)),
		Inflation:         ParseNullable(field(ColInflation)),
		Unemployment:      ParseNullable(field(ColUnemployment)),
		CostPerTourist:    ParseNullable(field(ColCostPerTourist)),
		AnnualGrowth:      ParseNullable(field(ColAnnualGrowth)),
	}, true
}

// ParseNullable converts a numeric cell, returning nil for empty cells, the
// ".." sentinel, and anything that does not parse as a finite number.
func ParseNullable(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == MissingValue {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsFinite(v) {
		return nil
	}
	return &v
}

func parseYear(s string) (int, bool) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsFinite(f) || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
