// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package snapshot persists normalized country tables in BadgerDB, keyed by
// the checksum of the raw dataset. A restart with an unchanged dataset skips
// normalization entirely.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/logging"
)

var (
	// ErrNotFound is returned when no snapshot exists for a checksum.
	ErrNotFound = errors.New("snapshot not found")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("snapshot store closed")
	// ErrEmptyChecksum is returned for an empty key.
	ErrEmptyChecksum = errors.New("empty checksum")
)

const prefixSnapshot = "snapshot:"

// Config controls the snapshot store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps the store in memory only, for tests and ephemeral runs.
	InMemory bool `koanf:"in_memory"`

	// Compression enables Snappy block compression.
	Compression bool `koanf:"compression"`

	// EntryTTL expires snapshots after this long. Zero keeps them forever.
	EntryTTL time.Duration `koanf:"entry_ttl"`

	// Retain is the number of most recent snapshots kept by Prune.
	Retain int `koanf:"retain"`

	// GCRatio is the discard ratio passed to value log GC.
	GCRatio float64 `koanf:"gc_ratio"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Path:        "./data/snapshots",
		Compression: true,
		Retain:      5,
		GCRatio:     0.5,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("snapshot.path is required unless in_memory is set")
	}
	if c.EntryTTL < 0 {
		return fmt.Errorf("snapshot.entry_ttl must be non-negative, got %v", c.EntryTTL)
	}
	if c.Retain < 1 {
		return fmt.Errorf("snapshot.retain must be positive, got %d", c.Retain)
	}
	if c.GCRatio <= 0 || c.GCRatio >= 1 {
		return fmt.Errorf("snapshot.gc_ratio must be in (0, 1), got %f", c.GCRatio)
	}
	return nil
}

// Snapshot is a normalized table and the dataset it was built from.
//
// Checksum is the key the table was stored under. Tables written through Memo
// use dataset.MemoKey, so it carries the normalizer version as well.
type Snapshot struct {
	Checksum  string                   `json:"checksum"`
	Source    string                   `json:"source"`
	CreatedAt time.Time                `json:"created_at"`
	Profiles  []dataset.CountryProfile `json:"profiles"`
}

// Info describes a stored snapshot without its profiles.
type Info struct {
	Checksum  string    `json:"checksum"`
	Source    string    `json:"source"`
	Countries int       `json:"countries"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats holds store counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Writes int64 `json:"writes"`
}

// Store is a BadgerDB backed snapshot store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	config Config

	mu     sync.RWMutex
	closed bool

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

// Open opens (or creates) the store.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("compression", cfg.Compression).
		Msg("snapshot store opened")

	return &Store{db: db, config: cfg}, nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func key(checksum string) []byte {
	return []byte(prefixSnapshot + checksum)
}

// Put stores snap under its checksum, replacing any previous value.
func (s *Store) Put(ctx context.Context, snap *Snapshot) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if snap.Checksum == "" {
		return ErrEmptyChecksum
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key(snap.Checksum), data)
		if s.config.EntryTTL > 0 {
			e = e.WithTTL(s.config.EntryTTL)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("write to BadgerDB: %w", err)
	}

	s.writes.Add(1)
	return nil
}

// Get returns the snapshot for checksum, or ErrNotFound.
func (s *Store) Get(ctx context.Context, checksum string) (*Snapshot, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if checksum == "" {
		return nil, ErrEmptyChecksum
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(checksum))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.misses.Add(1)
		}
		return nil, err
	}

	s.hits.Add(1)
	return &snap, nil
}

// Delete removes the snapshot for checksum. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, checksum string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key(checksum)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// List returns every stored snapshot, newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var infos []Info
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixSnapshot)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var snap Snapshot
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			})
			if err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).Msg("failed to decode snapshot")
				continue
			}
			infos = append(infos, Info{
				Checksum:  snap.Checksum,
				Source:    snap.Source,
				Countries: len(snap.Profiles),
				CreatedAt: snap.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].Checksum < infos[j].Checksum
	})
	return infos, nil
}

// Prune deletes all but the Retain newest snapshots and returns how many it removed.
func (s *Store) Prune(ctx context.Context) (int, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(infos) <= s.config.Retain {
		return 0, nil
	}

	removed := 0
	for _, info := range infos[s.config.Retain:] {
		if err := s.Delete(ctx, info.Checksum); err != nil {
			return removed, fmt.Errorf("delete snapshot %s: %w", info.Checksum, err)
		}
		removed++
	}
	return removed, nil
}

// RunGC runs one round of value log garbage collection. ErrNoRewrite, which
// means there was nothing to collect, is not reported.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.config.InMemory {
		return nil
	}
	err := s.db.RunValueLogGC(s.config.GCRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Stats returns the store counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Writes: s.writes.Load(),
	}
}

// Close closes the underlying database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
