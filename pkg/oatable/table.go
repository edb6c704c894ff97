// Package oatable provides a fixed-capacity open-addressing hash table.
package oatable

import (
	"math"

	"github.com/yndnr/oatable-go/pkg/prime"
)

// Table is an open-addressing hash table with string keys.
//
// All entries live in one contiguous slot array. The zero value is not
// usable; construct with New.
type Table[V any] struct {
	slots      []Slot[V]
	size       uint64
	count      int
	probes     uint64
	expansions int
	cfg        Config[V]
}

// New creates a table from the given configuration.
//
// The requested InitialSize is rounded up to the nearest prime. Zero-valued
// configuration fields fall back to package defaults before validation.
func New[V any](cfg Config[V]) (*Table[V], error) {
	cfg = cfg.withDefaults()
	if err := cfg.verify(); err != nil {
		return nil, err
	}

	size := prime.Next(cfg.InitialSize)
	return &Table[V]{
		slots: make([]Slot[V], size),
		size:  size,
		cfg:   cfg,
	}, nil
}

// Count returns the number of occupied slots.
func (t *Table[V]) Count() int {
	return t.count
}

// Insert stores a key/value pair.
//
// Duplicate keys overwrite the existing entry in place: the old value is
// released and Count is unchanged. An empty or over-long key fails with
// ErrInvalidKey. If no slot can be found even after growth, Insert fails
// with ErrTableFull and the table is unchanged.
func (t *Table[V]) Insert(key string, value V) error {
	if key == "" {
		return ErrInvalidKey.WithDetails("key must not be empty")
	}
	if len(key) > t.cfg.MaxKeyLen {
		return ErrInvalidKey.WithDetails("key exceeds maximum length")
	}

	if t.growthRequired() {
		t.grow()
	}

	return t.place(key, value)
}

// Find returns the value stored under key.
//
// The returned value is a copy; mutating it does not touch the table.
// Only the lifetime probe counter changes on a lookup, found or not.
func (t *Table[V]) Find(key string) (V, error) {
	var zero V
	if key == "" || len(key) > t.cfg.MaxKeyLen {
		return zero, ErrNotFound
	}

	start := t.cfg.PrimaryHash(key, t.size) % t.size
	stride := t.stride(key)

	idx := start
	var probed uint64
	for i := uint64(0); i < t.size; i++ {
		probed++
		s := &t.slots[idx]
		if s.State == Occupied && s.Key == key {
			t.probes += probed
			return s.Value, nil
		}
		if s.State == Unoccupied {
			break
		}
		idx = (idx + stride) % t.size
	}

	t.probes += probed
	return zero, ErrNotFound
}

// Remove deletes the entry stored under key.
//
// The value is released first, then the slot is handled per the deletion
// policy: Mark leaves a tombstone, Pack frees the slot and compacts the
// cluster behind it. A miss fails with ErrNotFound and leaves the table
// unchanged.
func (t *Table[V]) Remove(key string) error {
	if key == "" || len(key) > t.cfg.MaxKeyLen {
		return ErrNotFound
	}

	start := t.cfg.PrimaryHash(key, t.size) % t.size
	stride := t.stride(key)

	idx := start
	var probed uint64
	for i := uint64(0); i < t.size; i++ {
		probed++
		s := &t.slots[idx]
		if s.State == Occupied && s.Key == key {
			t.probes += probed
			if t.cfg.Release != nil {
				t.cfg.Release(s.Value)
			}

			if t.cfg.Policy == Pack {
				t.slots[idx] = Slot[V]{}
				t.count--
				t.pack(idx, stride)
			} else {
				// Tombstone. The key stays behind for snapshot
				// diagnostics; the value is dropped.
				var zero V
				s.State = Deleted
				s.Value = zero
				t.count--
			}
			return nil
		}
		if s.State == Unoccupied {
			break
		}
		idx = (idx + stride) % t.size
	}

	t.probes += probed
	return ErrNotFound
}

// Clear removes every entry without shrinking capacity.
//
// Occupied values are released; all slots revert to Unoccupied. Lifetime
// probe and expansion counters are retained.
func (t *Table[V]) Clear() {
	for i := range t.slots {
		if t.slots[i].State == Occupied && t.cfg.Release != nil {
			t.cfg.Release(t.slots[i].Value)
		}
		t.slots[i] = Slot[V]{}
	}
	t.count = 0
}

// stride returns the probe step for key: secondary hash plus one, or 1
// under linear probing. The modulus keeps a misbehaving hash in range;
// for a conforming hash it is the identity.
func (t *Table[V]) stride(key string) uint64 {
	if t.cfg.SecondaryHash == nil {
		return 1
	}
	return t.cfg.SecondaryHash(key, t.size-1)%(t.size-1) + 1
}

// growthRequired reports whether one more entry would push the load factor
// past the configured maximum. A maximum of exactly 1 defers growth until
// the table is completely full.
func (t *Table[V]) growthRequired() bool {
	if t.cfg.MaxLoadFactor == 1 {
		return uint64(t.count) == t.size
	}
	return float64(t.count+1)/float64(t.size) > t.cfg.MaxLoadFactor
}

// place walks the probe sequence and stores the entry.
//
// The first tombstone seen is remembered and takes priority over the
// terminating unoccupied slot, so clusters re-fill their gaps. A full
// cycle with neither fails with ErrTableFull.
func (t *Table[V]) place(key string, value V) error {
	start := t.cfg.PrimaryHash(key, t.size) % t.size
	stride := t.stride(key)

	idx := start
	tombstone := -1
	var probed uint64
	for i := uint64(0); i < t.size; i++ {
		probed++
		s := &t.slots[idx]

		switch {
		case s.State == Deleted:
			if tombstone < 0 {
				tombstone = int(idx)
			}
		case s.State == Unoccupied:
			t.probes += probed
			if tombstone >= 0 {
				idx = uint64(tombstone)
			}
			t.slots[idx] = Slot[V]{State: Occupied, Key: key, Value: value}
			t.count++
			return nil
		case s.Key == key:
			// Duplicate key: overwrite in place.
			t.probes += probed
			if t.cfg.Release != nil {
				t.cfg.Release(s.Value)
			}
			s.Value = value
			return nil
		}

		idx = (idx + stride) % t.size
	}

	t.probes += probed
	if tombstone >= 0 {
		t.slots[tombstone] = Slot[V]{State: Occupied, Key: key, Value: value}
		t.count++
		return nil
	}
	return ErrTableFull
}

// grow replaces the slot array with one sized to the nearest prime at or
// above size*GrowthFactor and re-inserts every occupied entry through the
// normal insert path, re-deriving probe positions under the new size.
func (t *Table[V]) grow() {
	old := t.slots

	next := uint64(math.Ceil(float64(t.size) * t.cfg.GrowthFactor))
	t.size = prime.Next(next)
	t.slots = make([]Slot[V], t.size)
	t.count = 0
	t.expansions++

	for i := range old {
		if old[i].State == Occupied {
			// The fresh array always has a free slot for every
			// entry of the smaller one.
			_ = t.place(old[i].Key, old[i].Value)
		}
	}
}

// pack compacts the cluster behind a freed slot.
//
// The stride for the whole pass is the one derived from the removed key,
// not from each shifted entry (see DESIGN.md). The first scan finds the
// stopping index: the slot before the first unoccupied slot along the
// stride. The second walk lifts every intervening entry and re-inserts it,
// letting it settle earlier in its own probe sequence.
func (t *Table[V]) pack(vacated, stride uint64) {
	cur := vacated
	stop := vacated
	for {
		cur = (cur + stride) % t.size
		if t.slots[cur].State == Unoccupied {
			stop = (cur + t.size - stride) % t.size
			break
		}
		if cur == vacated {
			stop = cur
			break
		}
	}

	cur = vacated
	for cur != stop {
		cur = (cur + stride) % t.size
		lifted := t.slots[cur]
		t.slots[cur] = Slot[V]{}
		t.count--
		_ = t.place(lifted.Key, lifted.Value)
	}
}
