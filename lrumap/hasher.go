/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import (
	"bytes"
	"hash/maphash"
)

// Hasher locates keys in the cache.
// Hash must return equal values for keys that are Equal.
//
// The cache keeps the keys it was given. A key that is modified after insertion
// (e.g. the backing array of a []byte key) may hash differently, so its entry can no longer
// be found by Get, Access, Contains, or Erase. Such an entry stays in the cache until it is evicted
// as the least recently used one, or until Clear.
type Hasher[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// ComparableHasher hashes any comparable key with the runtime hash function.
type ComparableHasher[K comparable] struct {
	seed maphash.Seed
}

// NewComparableHasher creates a new ComparableHasher with a random seed.
func NewComparableHasher[K comparable]() ComparableHasher[K] {
	return ComparableHasher[K]{seed: maphash.MakeSeed()}
}

// Hash implements Hasher interface.
func (h ComparableHasher[K]) Hash(key K) uint64 {
	return maphash.Comparable(h.seed, key)
}

// Equal implements Hasher interface.
func (h ComparableHasher[K]) Equal(a, b K) bool {
	return a == b
}

// BytesHasher hashes byte slice keys by their content.
// The cache keeps the key slices it was given, so they must not be modified afterwards.
type BytesHasher struct {
	seed maphash.Seed
}

// NewBytesHasher creates a new BytesHasher with a random seed.
func NewBytesHasher() BytesHasher {
	return BytesHasher{seed: maphash.MakeSeed()}
}

// Hash implements Hasher interface.
func (h BytesHasher) Hash(key []byte) uint64 {
	return maphash.Bytes(h.seed, key)
}

// Equal implements Hasher interface.
func (h BytesHasher) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}
