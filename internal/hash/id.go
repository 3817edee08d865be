// Package hash provides a fast, non-cryptographic grouping key used as an
// optimization ahead of exact-equality comparisons; it is never the final
// arbiter of correctness.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice, used by the tag-id
// dictionary builder as a fast pre-check when grouping records by their
// sorted tag-key byte string.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
