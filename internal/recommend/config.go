// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/recommend/similarity"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Similarity weights the cosine, budget and categorical components.
	Similarity similarity.Weights `json:"similarity" koanf:"similarity"`

	// BudgetDecay is the USD gap at which budget similarity falls to 1/e.
	// Default: 1000.
	BudgetDecay float64 `json:"budget_decay" koanf:"budget_decay"`

	// General blends the tourism and economic scores.
	General GeneralWeights `json:"general" koanf:"general"`

	// Final blends similarity with the general score when a profile is present.
	Final FinalWeights `json:"final" koanf:"final"`

	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// GeneralWeights defines score_general = Tourism*score_tourism + Economy*score_economy.
type GeneralWeights struct {
	Tourism float64 `json:"tourism" koanf:"tourism"`
	Economy float64 `json:"economy" koanf:"economy"`
}

// FinalWeights defines score_final = Similarity*similarity + General*score_general.
type FinalWeights struct {
	Similarity float64 `json:"similarity" koanf:"similarity"`
	General    float64 `json:"general" koanf:"general"`
}

// LimitsConfig bounds the number of returned items.
type LimitsConfig struct {
	// DefaultTopN is used when the request does not set TopN.
	// Default: 10.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN caps a request's TopN.
	// Default: 50.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	Enabled    bool          `json:"enabled" koanf:"enabled"`
	TTL        time.Duration `json:"ttl" koanf:"ttl"`
	MaxEntries int           `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns the production weights.
func DefaultConfig() *Config {
	return &Config{
		Similarity:  similarity.DefaultWeights(),
		BudgetDecay: similarity.DefaultBudgetDecay,
		General: GeneralWeights{
			Tourism: 0.6,
			Economy: 0.4,
		},
		Final: FinalWeights{
			Similarity: 0.7,
			General:    0.3,
		},
		Limits: LimitsConfig{
			DefaultTopN: 10,
			MaxTopN:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Similarity.Validate(); err != nil {
		return err
	}
	if !dataset.IsFinite(c.BudgetDecay) || c.BudgetDecay <= 0 {
		return fmt.Errorf("budget_decay must be positive, got %f", c.BudgetDecay)
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"general.tourism", c.General.Tourism},
		{"general.economy", c.General.Economy},
		{"final.similarity", c.Final.Similarity},
		{"final.general", c.Final.General},
	}
	for _, w := range weights {
		if !dataset.IsFinite(w.value) || w.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", w.name, w.value)
		}
	}

	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}
