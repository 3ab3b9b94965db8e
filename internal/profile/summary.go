// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DensityCategory classifies a country by yearly tourist arrivals.
type DensityCategory string

// Density categories, thresholds at 10M, 50M and 100M arrivals.
const (
	DensityLow      DensityCategory = "low"
	DensityMedium   DensityCategory = "medium"
	DensityHigh     DensityCategory = "high"
	DensityVeryHigh DensityCategory = "very high"
)

// DensityCategoryOf returns the category for the given arrivals.
func DensityCategoryOf(arrivals float64) DensityCategory {
	switch {
	case arrivals > 100e6:
		return DensityVeryHigh
	case arrivals > 50e6:
		return DensityHigh
	case arrivals > 10e6:
		return DensityMedium
	default:
		return DensityLow
	}
}

// Summary renders the profile as short human-readable text.
func (u *UserProfile) Summary() string {
	var b strings.Builder

	b.WriteString("Ideal destinations:\n")
	fmt.Fprintf(&b, "- Average density: %.2fM travellers\n", u.DensityIdealMean/1e6)
	fmt.Fprintf(&b, "- Average cost: $%s per tourist\n", formatThousands(u.BudgetIdealMean))
	fmt.Fprintf(&b, "- Preferred type: %s\n", u.TourismTypeIdeal)
	fmt.Fprintf(&b, "- Regions: %s\n", joinOr(u.RegionsIdeal, "all"))

	b.WriteString("Destinations to avoid:\n")
	avoidType := "none"
	if u.TourismTypeAvoid != nil {
		avoidType = *u.TourismTypeAvoid
	}
	fmt.Fprintf(&b, "- Type to avoid: %s\n", avoidType)
	fmt.Fprintf(&b, "- Regions: %s\n", joinOr(u.RegionsAvoid, "none"))

	return b.String()
}

func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}

// formatThousands renders v rounded to an integer with comma separators.
func formatThousands(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
