// Package xhash provides the hash functions used by hashtable, set, dense_map
// and the ECS archetype identity. It is backed by xxhash/v2 rather than
// maphash: archetype identity must be stable for the lifetime of a registry
// (it is XORed across calls and compared for equality across many
// archetypes), which a per-process random seed cannot guarantee.
//
// © 2025 ccl authors. MIT License.
package xhash

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/Voskan/ccl/internal/unsafehelpers"
)

// Bytes hashes a raw byte slice.
func Bytes(b []byte) uint64 { return xxhash.Sum64(b) }

// String hashes a string without copying it to a []byte.
func String(s string) uint64 { return xxhash.Sum64String(s) }

// Scalar hashes an arbitrary fixed-size value by reinterpreting its address
// as a byte window. Safe for comparable scalar key types (integers, structs
// of scalars); callers must not use it for types containing pointers or
// interface fields whose identity should not leak into the hash.
func Scalar[T any](v T) uint64 {
	b := unsafehelpers.ByteSliceFrom(unsafe.Pointer(&v), unsafe.Sizeof(v))
	return xxhash.Sum64(b)
}

// TypeHash mixes an arbitrary discriminator (typically a type-identity
// integer obtained via a package-level counter, see pkg/ecs) into the
// archetype-identity computation. XORing per-type hashes gives an
// order-independent archetype id, per spec §3.11 / §4.11.
func TypeHash(id uint64) uint64 {
	// Avalanche the raw id so that small, monotonically increasing type ids
	// (1, 2, 3, ...) don't XOR into suspiciously small archetype ids.
	h := id
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
