// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package api

import "errors"

// Error codes returned in models.APIError.Code.
const (
	CodeInvalidJSON     = "INVALID_JSON"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidParam    = "INVALID_PARAMETER"
	CodeNotFound        = "NOT_FOUND"
	CodeRecommendFailed = "RECOMMENDATION_FAILED"
	CodeReloadFailed    = "RELOAD_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

var (
	// ErrBodyTooLarge indicates the request body exceeded maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrTrailingData indicates more than one JSON value in the body.
	ErrTrailingData = errors.New("request body must contain a single JSON object")
)
