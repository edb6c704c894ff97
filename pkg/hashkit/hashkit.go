// Package hashkit provides ready-made hash function pairs for oatable.
//
// Each constructor returns an oatable.HashFunc; the *Stride variants are
// meant for the secondary slot of a table configuration and are derived
// from the same digest family under a different seed or salt, so primary
// and stride values stay independent.
package hashkit

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/blake2b"

	"github.com/yndnr/oatable-go/pkg/oatable"
)

// strideSeed separates the stride hash family from the primary one.
const strideSeed = 0x9e3779b9

// Murmur3 returns a primary hash backed by MurmurHash3.
func Murmur3() oatable.HashFunc {
	return func(key string, n uint64) uint64 {
		return murmur3.Sum64([]byte(key)) % n
	}
}

// Murmur3Stride returns a secondary hash backed by seeded MurmurHash3.
func Murmur3Stride() oatable.HashFunc {
	return func(key string, n uint64) uint64 {
		return murmur3.Sum64WithSeed([]byte(key), strideSeed) % n
	}
}

// XXHash returns a primary hash backed by xxHash64.
func XXHash() oatable.HashFunc {
	return func(key string, n uint64) uint64 {
		return xxhash.Sum64String(key) % n
	}
}

// XXHashStride returns a secondary hash backed by salted xxHash64.
func XXHashStride() oatable.HashFunc {
	return func(key string, n uint64) uint64 {
		var d xxhash.Digest
		d.Reset()
		var salt [4]byte
		binary.BigEndian.PutUint32(salt[:], strideSeed)
		d.Write(salt[:])
		d.WriteString(key)
		return d.Sum64() % n
	}
}

// Blake2b returns a keyed primary hash backed by BLAKE2b-256.
//
// The seed keys the digest, which makes probe positions unpredictable to
// callers that do not hold it. Seeds longer than 64 bytes are truncated.
func Blake2b(seed []byte) oatable.HashFunc {
	return blake2bFunc(seed)
}

// Blake2bStride returns a keyed secondary hash backed by BLAKE2b-256.
func Blake2bStride(seed []byte) oatable.HashFunc {
	salted := make([]byte, 0, len(seed)+4)
	var salt [4]byte
	binary.BigEndian.PutUint32(salt[:], strideSeed)
	salted = append(salted, salt[:]...)
	salted = append(salted, seed...)
	return blake2bFunc(salted)
}

func blake2bFunc(seed []byte) oatable.HashFunc {
	if len(seed) > blake2b.Size {
		seed = seed[:blake2b.Size]
	}
	return func(key string, n uint64) uint64 {
		h, err := blake2b.New256(seed)
		if err != nil {
			// Only reachable with an over-long key seed, which the
			// truncation above rules out.
			h, _ = blake2b.New256(nil)
		}
		h.Write([]byte(key))
		sum := h.Sum(nil)
		return binary.BigEndian.Uint64(sum[:8]) % n
	}
}

// FNV returns a primary hash backed by FNV-1a.
func FNV() oatable.HashFunc {
	return func(key string, n uint64) uint64 {
		h := fnv.New64a()
		h.Write([]byte(key))
		return h.Sum64() % n
	}
}

// FNVStride returns a secondary hash backed by salted FNV-1a.
func FNVStride() oatable.HashFunc {
	return func(key string, n uint64) uint64 {
		h := fnv.New64a()
		var salt [4]byte
		binary.BigEndian.PutUint32(salt[:], strideSeed)
		h.Write(salt[:])
		h.Write([]byte(key))
		return h.Sum64() % n
	}
}
