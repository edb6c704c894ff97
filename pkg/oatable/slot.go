// Package oatable provides a fixed-capacity open-addressing hash table.
package oatable

// SlotState is the occupancy state of one slot.
type SlotState uint8

const (
	// Unoccupied marks a slot that has never held an entry since the last
	// clear or resize. Probe sequences stop here.
	Unoccupied SlotState = iota

	// Occupied marks a slot holding a live entry.
	Occupied

	// Deleted marks a tombstone left by a Mark-policy removal. Probe
	// sequences walk through it; inserts reuse it.
	Deleted
)

// String returns the state name for diagnostics.
func (s SlotState) String() string {
	switch s {
	case Unoccupied:
		return "unoccupied"
	case Occupied:
		return "occupied"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Slot is one element of the table's slot array.
//
// Snapshots hand out copies of this type; the table never exposes its
// live array.
type Slot[V any] struct {
	State SlotState
	Key   string
	Value V
}
