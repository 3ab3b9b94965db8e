// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/travelrec/internal/catalog"
	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/enrichment"
	"github.com/tomtom215/travelrec/internal/models"
	"github.com/tomtom215/travelrec/internal/profile"
)

// Countries handles GET /api/v1/countries. An optional ?region= keeps only
// countries whose region equals it.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := h.catalog.Current()

	countries := table.Profiles()
	if region := strings.TrimSpace(r.URL.Query().Get("region")); region != "" {
		filtered := make([]dataset.CountryProfile, 0)
		for i := range countries {
			if countries[i].Region == region {
				filtered = append(filtered, countries[i])
			}
		}
		countries = filtered
	}

	respondSuccess(w, r, models.CountryListResponse{
		Countries:     countries,
		Total:         len(countries),
		DataAvailable: table.Available(),
	}, start, false)
}

// Country handles GET /api/v1/countries/{country}.
func (h *Handler) Country(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := h.catalog.Current()

	name, ok := countryParam(w, r)
	if !ok {
		return
	}

	p, found := table.Country(name)
	if !found {
		respondError(w, http.StatusNotFound, CodeNotFound, "Country not found: "+name, nil)
		return
	}

	detail := models.CountryDetail{
		CountryProfile:  p,
		DensityCategory: profile.DensityCategoryOf(p.TourismArrivals),
	}
	if agg, ok := table.Enrichment().Aggregate(name); ok {
		detail.Enrichment = &agg
	}

	respondSuccess(w, r, detail, start, false)
}

// CountryCities handles GET /api/v1/countries/{country}/cities.
//
// Query parameters:
//   - order: desc (default) or asc, by hotel count
//   - ambiance: quiet, balanced or vibrant; keeps only that class
func (h *Handler) CountryCities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := h.catalog.Current()

	name, ok := countryParam(w, r)
	if !ok {
		return
	}

	order := enrichment.OrderDesc
	switch strings.ToLower(r.URL.Query().Get("order")) {
	case "", string(enrichment.OrderDesc):
	case string(enrichment.OrderAsc):
		order = enrichment.OrderAsc
	default:
		respondError(w, http.StatusBadRequest, CodeInvalidParam, "order must be asc or desc", nil)
		return
	}

	var class enrichment.Ambiance
	if raw := r.URL.Query().Get("ambiance"); raw != "" {
		parsed, err := enrichment.ParseAmbiance(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidParam, "ambiance must be quiet, balanced or vibrant", nil)
			return
		}
		class = parsed
	}

	resp, found := cityList(table, name, order, class)
	if !found {
		respondError(w, http.StatusNotFound, CodeNotFound, "Country not found: "+name, nil)
		return
	}
	respondSuccess(w, r, resp, start, false)
}

// cityList classifies a country's cities in the requested order. A country
// known to the tourism table but absent from the city file yields an empty
// list; a country known to neither is not found.
func cityList(table *catalog.Table, country string, order enrichment.Order, class enrichment.Ambiance) (models.CityListResponse, bool) {
	resp := models.CityListResponse{
		Country:  country,
		Order:    order,
		Ambiance: class,
		Cities:   []enrichment.CityAmbiance{},
	}

	cities := table.Enrichment()
	th, ok := cities.Thresholds(country)
	if !ok {
		_, known := table.Country(country)
		return resp, known
	}
	resp.Thresholds = &th

	for _, c := range cities.Cities(country, order) {
		a := th.Classify(c.HotelCount)
		if class != "" && a != class {
			continue
		}
		resp.Cities = append(resp.Cities, enrichment.CityAmbiance{City: c, Ambiance: a})
	}
	return resp, true
}

// countryParam reads and unescapes the {country} URL parameter.
func countryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "country"))
	if err != nil || strings.TrimSpace(name) == "" {
		respondError(w, http.StatusBadRequest, CodeInvalidParam, "Invalid country name", nil)
		return "", false
	}
	return name, true
}
