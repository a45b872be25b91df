package hashtable

import "github.com/Voskan/ccl/internal/xhash"

// HashFunc computes a 64-bit hash for a key. Tables default to DefaultHash
// but accept a custom one via WithHashFunc.
type HashFunc[K comparable] func(K) uint64

// DefaultHash type-switches on common key shapes (string, []byte) before
// falling back to a scalar hash over the key's in-memory representation,
// backed by xxhash so the result is stable across a hashtable's lifetime
// independent of any per-process random seed.
func DefaultHash[K comparable](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xhash.String(k)
	case []byte:
		return xhash.Bytes(k)
	default:
		return xhash.Scalar(key)
	}
}
