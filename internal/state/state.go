// Package state persists per-filter listing snapshots through the blob
// interface, keyed by filter name.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"yad2watch/internal/model"
	"yad2watch/internal/storage"
)

// Store loads and saves FilterState blobs. It is the only component that
// knows how filter names map to blob keys.
type Store struct {
	blobs storage.Blob
}

// New creates a Store over the given blob backend.
func New(blobs storage.Blob) *Store {
	return &Store{blobs: blobs}
}

// Load returns the persisted state for a filter. A filter that has never
// been persisted yields an empty state, not an error.
func (s *Store) Load(ctx context.Context, filterName string) (model.FilterState, error) {
	data, err := s.blobs.Get(ctx, key(filterName))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.NewFilterState(), nil
		}
		return model.FilterState{}, fmt.Errorf("load state for %q: %w", filterName, err)
	}

	var st model.FilterState
	if err := json.Unmarshal(data, &st); err != nil {
		return model.FilterState{}, fmt.Errorf("decode state for %q: %w", filterName, err)
	}
	if st.Listings == nil {
		st.Listings = make(map[string]model.Listing)
	}
	return st, nil
}

// Save persists the state. Callers invoke this at most once per filter per
// cycle, after diffing; a mid-cycle crash therefore leaves the prior
// snapshot untouched.
func (s *Store) Save(ctx context.Context, filterName string, st model.FilterState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state for %q: %w", filterName, err)
	}
	if err := s.blobs.Put(ctx, key(filterName), data); err != nil {
		return fmt.Errorf("save state for %q: %w", filterName, err)
	}
	return nil
}

func key(filterName string) string {
	return "state-" + filterName
}
