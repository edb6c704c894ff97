// Package hashkit provides ready-made hash function pairs for oatable.
package hashkit

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/yndnr/oatable-go/pkg/oatable"
)

// Algorithm names accepted by ByName.
const (
	AlgMurmur3 = "murmur3"
	AlgXXHash  = "xxhash"
	AlgBlake2b = "blake2b"
	AlgFNV     = "fnv"
)

// Pair is a primary/secondary hash function pair sharing one digest family.
type Pair struct {
	Primary   oatable.HashFunc
	Secondary oatable.HashFunc
}

// ByName returns the hash pair for a named algorithm.
//
// The seed is only used by keyed algorithms (blake2b); the others ignore it.
func ByName(name string, seed []byte) (Pair, error) {
	switch name {
	case AlgMurmur3:
		return Pair{Primary: Murmur3(), Secondary: Murmur3Stride()}, nil
	case AlgXXHash:
		return Pair{Primary: XXHash(), Secondary: XXHashStride()}, nil
	case AlgBlake2b:
		return Pair{Primary: Blake2b(seed), Secondary: Blake2bStride(seed)}, nil
	case AlgFNV:
		return Pair{Primary: FNV(), Secondary: FNVStride()}, nil
	default:
		return Pair{}, fmt.Errorf("unknown hash algorithm %q (have %v)", name, Names())
	}
}

// Seed encodes a numeric seed for ByName. Zero means unseeded.
func Seed(seed uint64) []byte {
	if seed == 0 {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seed)
	return buf[:]
}

// Names returns the accepted algorithm names, sorted.
func Names() []string {
	names := []string{AlgMurmur3, AlgXXHash, AlgBlake2b, AlgFNV}
	sort.Strings(names)
	return names
}
