// Package oatable provides a fixed-capacity open-addressing hash table
// for embedding in engine and runtime internals.
//
// The table maps bounded-length string keys to caller-supplied values and
// keeps every entry directly in one contiguous slot array. Collisions are
// resolved by double hashing: the primary hash function picks the starting
// slot and an optional secondary hash function picks the stride; without a
// secondary function the table degrades to linear probing.
//
// Deletion Policies:
//
//   - Mark: removed slots become tombstones that keep probe chains intact
//     and are reused by later inserts.
//   - Pack: removed slots are freed immediately and the surrounding cluster
//     is compacted so probe chains never cross a fresh gap.
//
// The table grows automatically when an insert would push the load factor
// past the configured maximum; capacities are always prime (pkg/prime) so
// every stride visits every slot.
//
// Thread Safety:
//
// None. The table is single-threaded by contract; embedding systems wrap it
// with their own synchronization (see internal/store for the server's).
package oatable
