// Package store provides the synchronized embedding layer around the
// open-addressing table.
//
// The table itself is single-threaded by contract, so this package owns
// the locking the servers need. Every lookup bumps the table's lifetime
// probe counter, which is a write, so all operations take the exclusive
// lock rather than a read lock.
package store

import (
	"context"
	"sync"

	"github.com/yndnr/oatable-go/pkg/oatable"
)

// Store is a concurrency-safe byte-value store backed by one table.
type Store struct {
	mu    sync.Mutex
	table *oatable.Table[[]byte]

	// freedBytes accumulates the sizes of all released values.
	freedBytes uint64
}

// New creates a store from a table configuration.
//
// The configuration's Release hook is chained: the store counts freed
// bytes first, then invokes the caller's hook if one was set.
func New(cfg oatable.Config[[]byte]) (*Store, error) {
	s := &Store{}

	callerRelease := cfg.Release
	cfg.Release = func(v []byte) {
		s.freedBytes += uint64(len(v))
		if callerRelease != nil {
			callerRelease(v)
		}
	}

	table, err := oatable.New(cfg)
	if err != nil {
		return nil, err
	}
	s.table = table
	return s, nil
}

// Set stores a key/value pair. The value is copied in.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Insert(key, buf)
}

// Get retrieves the value for a key. The returned slice is a copy.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.table.Find(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Has reports whether a key is present.
func (s *Store) Has(ctx context.Context, key string) bool {
	_, err := s.Get(ctx, key)
	return err == nil
}

// Delete removes a key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Remove(key)
}

// Clear removes all entries without shrinking capacity.
func (s *Store) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Clear()
}

// Count returns the number of live entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Count()
}

// Stats returns the table statistics plus the freed-bytes counter.
func (s *Store) Stats() (oatable.Stats, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Stats(), s.freedBytes
}

// TableStats returns the table statistics alone. It satisfies the
// metrics collector's source interface.
func (s *Store) TableStats() oatable.Stats {
	stats, _ := s.Stats()
	return stats
}

// Snapshot returns a deep copy of the slot array for diagnostics.
//
// Values are copied so callers can never alias table-owned memory.
func (s *Store) Snapshot() []oatable.Slot[[]byte] {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.table.Snapshot()
	for i := range snap {
		if snap[i].Value != nil {
			buf := make([]byte, len(snap[i].Value))
			copy(buf, snap[i].Value)
			snap[i].Value = buf
		}
	}
	return snap
}
