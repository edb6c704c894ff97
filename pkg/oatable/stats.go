// Package oatable provides a fixed-capacity open-addressing hash table.
package oatable

// Stats is a point-in-time view of table bookkeeping.
type Stats struct {
	// TableSize is the current slot-array capacity (always prime).
	TableSize uint64

	// Count is the number of occupied slots.
	Count int

	// Probes is the lifetime sum of probe steps across all operations,
	// including failed lookups.
	Probes uint64

	// Expansions is the number of resizes performed.
	Expansions int

	// LoadFactor is Count divided by TableSize.
	LoadFactor float64

	// PrimaryHash and SecondaryHash are the configured hash functions.
	// SecondaryHash is nil under linear probing.
	PrimaryHash   HashFunc
	SecondaryHash HashFunc
}

// Stats returns the current table statistics.
func (t *Table[V]) Stats() Stats {
	return Stats{
		TableSize:     t.size,
		Count:         t.count,
		Probes:        t.probes,
		Expansions:    t.expansions,
		LoadFactor:    float64(t.count) / float64(t.size),
		PrimaryHash:   t.cfg.PrimaryHash,
		SecondaryHash: t.cfg.SecondaryHash,
	}
}

// Snapshot returns a copy of the slot array in physical order.
//
// The copy is for diagnostics and tests only; mutating it has no effect
// on the table.
func (t *Table[V]) Snapshot() []Slot[V] {
	out := make([]Slot[V], len(t.slots))
	copy(out, t.slots)
	return out
}
