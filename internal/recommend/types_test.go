// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package recommend

import (
	"errors"
	"testing"

	"github.com/tomtom215/travelrec/internal/profile"
)

func TestParsePopularityPreference(t *testing.T) {
	tests := []struct {
		input   string
		want    PopularityPreference
		wantErr bool
	}{
		{"hidden_gems", PopularityHiddenGems, false},
		{"hidden-gems", PopularityHiddenGems, false},
		{" Hidden-Gems ", PopularityHiddenGems, false},
		{"emerging", PopularityEmerging, false},
		{"POPULAR", PopularityPopular, false},
		{"", "", true},
		{"trending", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePopularityPreference(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePopularityPreference(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
			if got != tt.want {
				t.Errorf("ParsePopularityPreference(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEconomicPreference(t *testing.T) {
	tests := []struct {
		input   string
		want    EconomicPreference
		wantErr bool
	}{
		{"flexible", EconomicFlexible, false},
		{"Stable", EconomicStable, false},
		{"growing", EconomicGrowing, false},
		{"booming", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEconomicPreference(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEconomicPreference(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEconomicPreference(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRequestPersonalized(t *testing.T) {
	if (&Request{}).Personalized() {
		t.Error("request without profile reported personalized")
	}
	if !(&Request{Profile: &profile.UserProfile{}}).Personalized() {
		t.Error("request with profile reported not personalized")
	}
}
