package model

import "time"

// Snapshot holds the raw results of a single poll cycle. Data maps a dataset
// name to its rows; a dataset whose query failed this cycle is present with
// nil rows and listed in Failed. Datasets the cycle never attempted are
// absent entirely.
type Snapshot struct {
	Data      map[string][]Row
	Failed    map[string]bool
	FetchedAt time.Time
}

// Store keeps the latest known rows per dataset across poll cycles.
//
// Apply replaces only the datasets present in the snapshot: a dataset that
// was attempted and failed is replaced with no rows, while a dataset the
// cycle never reached keeps its last good rows. The Store is only ever
// touched from the TUI update loop, so it needs no locking.
type Store struct {
	data      map[string][]Row
	fetchedAt time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string][]Row)}
}

// Apply merges a poll-cycle snapshot into the store.
func (s *Store) Apply(snap *Snapshot) {
	if snap == nil {
		return
	}
	for name, rows := range snap.Data {
		s.data[name] = rows
	}
	s.fetchedAt = snap.FetchedAt
}

// Rows returns the last known rows for the named dataset. The returned slice
// is shared with the store and must not be mutated.
func (s *Store) Rows(name string) []Row {
	return s.data[name]
}

// FetchedAt returns the timestamp of the most recently applied snapshot.
func (s *Store) FetchedAt() time.Time {
	return s.fetchedAt
}
