/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import "github.com/acronis/go-lrumap/internal/recency"

type entry[K any, V any] struct {
	key    K
	value  V
	weight uint64
	hash   uint64
	pos    recency.Handle
	dead   bool
}

// entryTable maps keys to entries. Collisions of 64-bit hashes are resolved with Hasher.Equal.
type entryTable[K any, V any] struct {
	hasher  Hasher[K]
	buckets map[uint64][]*entry[K, V]
	size    int
}

func newEntryTable[K any, V any](hasher Hasher[K]) *entryTable[K, V] {
	return &entryTable[K, V]{hasher: hasher, buckets: make(map[uint64][]*entry[K, V])}
}

func (t *entryTable[K, V]) len() int {
	return t.size
}

func (t *entryTable[K, V]) lookup(key K) *entry[K, V] {
	h := t.hasher.Hash(key)
	for _, e := range t.buckets[h] {
		if t.hasher.Equal(e.key, key) {
			return e
		}
	}
	return nil
}

// getOrCreate returns the entry for the key, inserting a zero-valued one on miss.
func (t *entryTable[K, V]) getOrCreate(key K) (e *entry[K, V], created bool) {
	h := t.hasher.Hash(key)
	bucket := t.buckets[h]
	for _, e = range bucket {
		if t.hasher.Equal(e.key, key) {
			return e, false
		}
	}
	e = &entry[K, V]{key: key, hash: h}
	t.buckets[h] = append(bucket, e)
	t.size++
	return e, true
}

// erase removes the entry for the key and returns it, or nil if there was none.
func (t *entryTable[K, V]) erase(key K) *entry[K, V] {
	h := t.hasher.Hash(key)
	bucket := t.buckets[h]
	for i, e := range bucket {
		if !t.hasher.Equal(e.key, key) {
			continue
		}
		t.removeFromBucket(h, bucket, i)
		return e
	}
	return nil
}

// remove removes the given entry using the hash it was stored with, so it works even if Hasher would
// no longer find the entry by its key.
func (t *entryTable[K, V]) remove(target *entry[K, V]) {
	bucket := t.buckets[target.hash]
	for i, e := range bucket {
		if e == target {
			t.removeFromBucket(target.hash, bucket, i)
			return
		}
	}
}

func (t *entryTable[K, V]) removeFromBucket(h uint64, bucket []*entry[K, V], i int) {
	last := len(bucket) - 1
	bucket[i] = bucket[last]
	bucket[last] = nil
	if last == 0 {
		delete(t.buckets, h)
	} else {
		t.buckets[h] = bucket[:last]
	}
	t.size--
}

// reset drops all entries, marking them dead for any outstanding handles.
func (t *entryTable[K, V]) reset() {
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			e.dead = true
		}
	}
	t.buckets = make(map[uint64][]*entry[K, V])
	t.size = 0
}
