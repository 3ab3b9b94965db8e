// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package snapshot

import (
	"context"
	"errors"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/logging"
)

// Memo adapts a Store to dataset.Memo. Store errors are logged and treated
// as a miss, so a broken snapshot directory only costs a re-normalization.
type Memo struct {
	Backend *Store
	Source  string
}

var _ dataset.Memo = (*Memo)(nil)

// Lookup implements dataset.Memo.
func (m *Memo) Lookup(ctx context.Context, key string) ([]dataset.CountryProfile, bool) {
	snap, err := m.Backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("snapshot lookup failed")
		}
		return nil, false
	}
	return snap.Profiles, true
}

// Store implements dataset.Memo.
func (m *Memo) Store(ctx context.Context, key string, profiles []dataset.CountryProfile) {
	err := m.Backend.Put(ctx, &Snapshot{
		Checksum: key,
		Source:   m.Source,
		Profiles: profiles,
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("snapshot write failed")
		return
	}

	if removed, err := m.Backend.Prune(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("snapshot prune failed")
	} else if removed > 0 {
		logging.Ctx(ctx).Debug().Int("removed", removed).Msg("pruned old snapshots")
	}
}
