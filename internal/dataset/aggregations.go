// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import "sort"

// aggregationNames lists World Bank rollup entities that are not countries.
// Membership is exact string match only; keyword matching drops real
// countries such as "South Africa" and is never used.
var aggregationNames = []string{
	"World",
	"Euro area",
	"European Union",
	"High income",
	"Low income",
	"Middle income",
	"Lower middle income",
	"Upper middle income",
	"Low & middle income",
	"OECD members",
	"East Asia & Pacific",
	"East Asia & Pacific (excluding high income)",
	"East Asia & Pacific (IDA & IBRD countries)",
	"Europe & Central Asia",
	"Europe & Central Asia (excluding high income)",
	"Europe & Central Asia (IDA & IBRD countries)",
	"Latin America & Caribbean",
	"Latin America & Caribbean (excluding high income)",
	"Latin America & the Caribbean (IDA & IBRD countries)",
	"Middle East & North Africa",
	"Middle East & North Africa (excluding high income)",
	"Middle East & North Africa (IDA & IBRD countries)",
	"South Asia",
	"South Asia (IDA & IBRD)",
	"Sub-Saharan Africa",
	"Sub-Saharan Africa (excluding high income)",
	"Sub-Saharan Africa (IDA & IBRD countries)",
	"Small states",
	"Caribbean small states",
	"Pacific island small states",
	"Other small states",
	"Fragile and conflict affected situations",
	"Heavily indebted poor countries (HIPC)",
	"IDA & IBRD total",
	"IDA blend",
	"IDA only",
	"IBRD only",
	"IDA total",
	"Least developed countries: UN classification",
	"Arab World",
	"Central Europe and the Baltics",
	"Africa Eastern and Southern",
	"Africa Western and Central",
	"Early-demographic dividend",
	"Late-demographic dividend",
	"Pre-demographic dividend",
	"Post-demographic dividend",
	"North America",
}

var aggregationSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(aggregationNames))
	for _, name := range aggregationNames {
		set[name] = struct{}{}
	}
	return set
}()

// IsAggregation reports whether name is a non-country aggregate entity.
func IsAggregation(name string) bool {
	_, ok := aggregationSet[name]
	return ok
}

// AggregationNames returns the aggregate entity names in sorted order.
func AggregationNames() []string {
	names := make([]string, 0, len(aggregationSet))
	for name := range aggregationSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
