/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

// Handle gives read and replace access to a cache entry. It is returned by Cache.Access.
//
// A handle never exposes a pointer to the stored value: Peek returns a copy,
// and the only way to change the value is Replace, which keeps the weight accounting of the cache correct.
//
// A handle is meant to be used right after Access. It stops being live once its entry
// is evicted, erased, cleared, or moved away by Swap. Peek on a dead handle returns the zero value,
// and Replace on it does nothing.
type Handle[K any, V any] struct {
	cache *Cache[K, V]
	entry *entry[K, V]
	epoch uint64
}

// Live reports whether the entry referenced by the handle is still in the cache.
func (h Handle[K, V]) Live() bool {
	return h.entry != nil && !h.entry.dead && h.epoch == h.cache.epoch
}

// Key returns the key of the entry.
func (h Handle[K, V]) Key() (key K) {
	if h.entry == nil {
		return key
	}
	return h.entry.key
}

// Peek returns a copy of the current value. It has no side effects.
func (h Handle[K, V]) Peek() (value V) {
	if !h.Live() {
		return value
	}
	return h.entry.value
}

// Replace stores the new value and returns the previous one.
// The entry becomes the most recently used one. Under the size policy the running weight is updated
// and the least recently used entries are evicted until the cache fits its bound again.
func (h Handle[K, V]) Replace(value V) (old V) {
	if !h.Live() {
		return old
	}
	return h.cache.replace(h.entry, value)
}
