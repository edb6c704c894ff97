// Package oatable provides a fixed-capacity open-addressing hash table.
package oatable

// Default configuration values.
const (
	// DefaultInitialSize is the requested capacity when none is given.
	DefaultInitialSize = 7

	// DefaultMaxKeyLen bounds the key buffer, matching the fixed-width
	// key storage of embedding engines.
	DefaultMaxKeyLen = 31

	// DefaultMaxLoadFactor triggers growth at half occupancy.
	DefaultMaxLoadFactor = 0.5

	// DefaultGrowthFactor doubles capacity before prime rounding.
	DefaultGrowthFactor = 2.0
)

// HashFunc maps a key into [0, n). The primary function receives the table
// size; the secondary function receives table size minus one and its result
// plus one becomes the probe stride.
type HashFunc func(key string, n uint64) uint64

// Policy selects how removals treat the freed slot.
type Policy uint8

const (
	// Mark leaves a tombstone in the freed slot.
	Mark Policy = iota

	// Pack frees the slot and compacts the cluster behind it.
	Pack
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Mark:
		return "mark"
	case Pack:
		return "pack"
	default:
		return "unknown"
	}
}

// Config holds the immutable table configuration.
//
// InitialSize is a request; the table rounds it up to the nearest prime.
// A nil SecondaryHash selects linear probing (stride 1). Release, when set,
// is invoked synchronously on every value the table discards: on removal,
// on duplicate-key overwrite, and on Clear.
type Config[V any] struct {
	InitialSize   uint64
	PrimaryHash   HashFunc
	SecondaryHash HashFunc
	MaxLoadFactor float64
	GrowthFactor  float64
	Policy        Policy
	Release       func(V)
	MaxKeyLen     int
}

// withDefaults fills zero-valued fields.
func (c Config[V]) withDefaults() Config[V] {
	if c.InitialSize == 0 {
		c.InitialSize = DefaultInitialSize
	}
	if c.MaxLoadFactor == 0 {
		c.MaxLoadFactor = DefaultMaxLoadFactor
	}
	if c.GrowthFactor == 0 {
		c.GrowthFactor = DefaultGrowthFactor
	}
	if c.MaxKeyLen == 0 {
		c.MaxKeyLen = DefaultMaxKeyLen
	}
	return c
}

// verify validates the configuration after defaults are applied.
func (c Config[V]) verify() error {
	if c.PrimaryHash == nil {
		return ErrInvalidConfig.WithDetails("primary hash function is required")
	}
	if c.MaxLoadFactor <= 0 || c.MaxLoadFactor > 1 {
		return ErrInvalidConfig.WithDetails("max load factor must be in (0, 1]")
	}
	if c.GrowthFactor <= 1 {
		return ErrInvalidConfig.WithDetails("growth factor must be greater than 1")
	}
	if c.Policy != Mark && c.Policy != Pack {
		return ErrInvalidConfig.WithDetails("unknown deletion policy")
	}
	if c.MaxKeyLen < 1 {
		return ErrInvalidConfig.WithDetails("max key length must be positive")
	}
	return nil
}
