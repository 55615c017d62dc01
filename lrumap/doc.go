/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package lrumap provides an in-memory map-like container with LRU eviction bounded either by
// the number of entries (CountPolicy) or by the total weight of values (SizePolicy), and Prometheus metrics.
//
// Cache.Access is the single read/write entry point. It creates a zero-valued entry for an absent key
// and returns a Handle for reading (Peek) or replacing (Replace) the value.
// Under the size policy weight accounting and eviction happen only on Replace,
// when the final weight of the value is known.
//
// The container is not safe for concurrent use and intentionally doesn't support iteration.
package lrumap
