package store

import (
	"context"
	"errors"
	"sync"

	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

var errNeverSaved = errors.New("nothing saved")

// MemoryStore is an ephemeral, thread-safe Source and Sink. A collection that
// was never saved loads as a MissingInputError, like an absent file.
//
// Saved data is deep-copied in both directions, so callers never share
// locations with the store.
type MemoryStore struct {
	name string

	mu        sync.RWMutex
	paths     []geometry.Path
	locations []*location.Location
	hasPaths  bool
	hasLocs   bool
}

// NewMemoryStore returns an empty store. name identifies it in errors.
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name}
}

// NewMemoryStoreFrom returns a store pre-loaded with both collections of ds.
func NewMemoryStoreFrom(name string, ds dataset.Dataset) *MemoryStore {
	s := NewMemoryStore(name)
	ds = ds.Clone()
	s.paths, s.locations = ds.Paths, ds.Locations
	s.hasPaths, s.hasLocs = true, true
	return s
}

func (s *MemoryStore) LoadPaths(ctx context.Context) ([]geometry.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasPaths {
		return nil, &MissingInputError{Collection: CollectionPaths, Source: s.name, Err: errNeverSaved}
	}
	return dataset.Dataset{Paths: s.paths}.Clone().Paths, nil
}

func (s *MemoryStore) LoadLocations(ctx context.Context) ([]*location.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasLocs {
		return nil, &MissingInputError{Collection: CollectionLocations, Source: s.name, Err: errNeverSaved}
	}
	return dataset.Dataset{Locations: s.locations}.Clone().Locations, nil
}

func (s *MemoryStore) SavePaths(ctx context.Context, paths []geometry.Path) error {
	cp := dataset.Dataset{Paths: paths}.Clone().Paths
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths, s.hasPaths = cp, true
	return nil
}

func (s *MemoryStore) SaveLocations(ctx context.Context, locs []*location.Location) error {
	cp := dataset.Dataset{Locations: locs}.Clone().Locations
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations, s.hasLocs = cp, true
	return nil
}

// Dataset returns a copy of everything saved so far.
func (s *MemoryStore) Dataset() dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dataset.Dataset{Paths: s.paths, Locations: s.locations}.Clone()
}
