// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package dataset turns the raw per-country, per-year tourism and economy table
into one representative CountryProfile per country.

# Pipeline

Normalize applies, in order:

 1. Exact-match exclusion of World Bank aggregate rows (see AggregationSet)
 2. Column-wide median imputation of inflation and unemployment
 3. Selection of the latest year carrying tourism receipts or arrivals
 4. Derivation of cost per tourist and year-over-year arrival growth
 5. Removal of countries with no tourism signal

The result is sorted by country name and is a pure function of its input:
running Normalize twice over the same records yields identical tables, and
NormalizeProfiles over an already normalized table returns it unchanged.

# Sources

Records are read through the Source interface. CSVSource parses the file
directly, DuckDBSource reads a DuckDB table or lets DuckDB scan the CSV.
LoadProfiles wraps both and absorbs read failures into an empty table so that
callers see "no data available" instead of an error. BreakerSource puts a
circuit breaker in front of either source so that a source which keeps
failing is not read again until its open period has passed.

# Thread Safety

All functions are pure; returned slices are owned by the caller.
*/
package dataset
