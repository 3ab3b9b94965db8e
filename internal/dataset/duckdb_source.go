// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
)

// DefaultTable is the table DuckDBSource reads when none is configured.
const DefaultTable = "tourism_economy"

// memoryDSN opens a throwaway in-process database without touching the
// extension cache.
const memoryDSN = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DuckDBSource reads records through DuckDB. With DatabasePath set it reads
// Table from that database file; otherwise it scans CSVPath with read_csv,
// treating every column as text so the ".." sentinel survives until
// ParseNullable sees it.
type DuckDBSource struct {
	DatabasePath string
	Table        string
	CSVPath      string
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	if s.DatabasePath != "" {
		return "duckdb:" + s.DatabasePath + "/" + s.table()
	}
	return "duckdb-csv:" + s.CSVPath
}

func (s *DuckDBSource) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

// query returns the DSN and the SELECT statement for the configured mode.
func (s *DuckDBSource) query() (dsn, query string, err error) {
	if s.DatabasePath != "" {
		table := s.table()
		if !identifierPattern.MatchString(table) {
			return "", "", fmt.Errorf("invalid table name %q", table)
		}
		return s.DatabasePath + "?access_mode=read_only",
			fmt.Sprintf("SELECT * FROM %s", table), nil
	}
	if s.CSVPath == "" {
		return "", "", fmt.Errorf("duckdb source needs a database path or a csv path")
	}
	path := strings.ReplaceAll(s.CSVPath, "'", "''")
	return memoryDSN,
		fmt.Sprintf("SELECT * FROM read_csv('%s', header = true, all_varchar = true)", path), nil
}

// Records implements Source.
func (s *DuckDBSource) Records(ctx context.Context) ([]CountryYearRecord, error) {
	dsn, query, err := s.query()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open duckdb: %w", ErrDataUnavailable, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", ErrDataUnavailable, s.Name(), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns: %w", ErrDataUnavailable, err)
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[strings.ToLower(strings.TrimSpace(c))] = i
	}
	for _, required := range []string{ColCountry, ColYear} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrDataUnavailable, required)
		}
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var records []CountryYearRecord
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrDataUnavailable, err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok {
				return ""
			}
			return cellString(values[i])
		}
		if rec, ok := recordFromFields(field); ok {
			records = append(records, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", ErrDataUnavailable, err)
	}
	return records, nil
}

// cellString renders a scanned DuckDB value the way the CSV reader would see it.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case uint64:
		return strconv.FormatUint(t, 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case time.Time:
		return strconv.Itoa(t.Year())
	default:
		return fmt.Sprint(t)
	}
}
