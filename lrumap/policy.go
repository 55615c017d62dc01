/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import (
	"errors"
	"fmt"
)

// PolicyKind names an eviction policy.
type PolicyKind string

// Eviction policies.
const (
	// PolicyCount bounds the number of entries.
	PolicyCount PolicyKind = "count"
	// PolicySize bounds the total weight of values.
	PolicySize PolicyKind = "size"
)

// Weigher returns the weight of a value. It must be pure, deterministic and cheap.
type Weigher[V any] func(value V) uint64

// ErrNilWeigher is returned when the size policy is configured without a Weigher.
var ErrNilWeigher = errors.New("weigher must not be nil")

// EvictionPolicy selects how the cache bounds its resident footprint.
// Use CountPolicy or SizePolicy to create one.
type EvictionPolicy[V any] struct {
	kind       PolicyKind
	maxEntries int
	maxWeight  uint64
	weigher    Weigher[V]
}

// CountPolicy returns a policy that keeps at most maxEntries entries.
// The least recently used entry is evicted right after an access that creates an extra one.
// Zero is a valid bound: every newly created entry is evicted immediately.
func CountPolicy[V any](maxEntries int) EvictionPolicy[V] {
	return EvictionPolicy[V]{kind: PolicyCount, maxEntries: maxEntries}
}

// SizePolicy returns a policy that keeps the sum of weigher(value) over all entries at most maxWeight.
// Eviction runs when a value is replaced, after its new weight is known.
// A single entry heavier than maxWeight is kept alone in the cache.
func SizePolicy[V any](maxWeight uint64, weigher Weigher[V]) EvictionPolicy[V] {
	return EvictionPolicy[V]{kind: PolicySize, maxWeight: maxWeight, weigher: weigher}
}

// Kind returns the policy kind.
func (p EvictionPolicy[V]) Kind() PolicyKind {
	return p.kind
}

func (p EvictionPolicy[V]) build() (evictionPolicy[V], error) {
	switch p.kind {
	case PolicyCount:
		if p.maxEntries < 0 {
			return nil, fmt.Errorf("maxEntries must be greater or equal to 0, got %d", p.maxEntries)
		}
		return &countPolicy[V]{maxEntries: p.maxEntries}, nil
	case PolicySize:
		if p.weigher == nil {
			return nil, ErrNilWeigher
		}
		var zero V
		return &sizePolicy[V]{maxWeight: p.maxWeight, weigher: p.weigher, zeroWeight: p.weigher(zero)}, nil
	}
	return nil, fmt.Errorf("unknown eviction policy %q", p.kind)
}

// evictionPolicy is implemented only by countPolicy and sizePolicy.
// Weights returned by the policy are stored in entries and handed back on replace and erase,
// so the Weigher is called once per value.
type evictionPolicy[V any] interface {
	kind() PolicyKind
	limit() uint64
	memory(entries int) uint64

	// onCreate accounts a new zero-valued entry and returns its weight.
	onCreate() uint64
	// onAccess reports whether the least recently used entry must be evicted after an access.
	onAccess(entries int) bool
	// onReplace accounts the replacement of a value of oldWeight and returns the weight of the new value.
	onReplace(oldWeight uint64, value V) uint64
	// overLimit reports whether eviction must continue after a replacement.
	overLimit(entries int) bool
	onErase(weight uint64)
	onClear()
}

type countPolicy[V any] struct {
	maxEntries int
}

func (p *countPolicy[V]) kind() PolicyKind { return PolicyCount }

func (p *countPolicy[V]) limit() uint64 { return uint64(p.maxEntries) }

// Every entry weighs one under the count policy.
func (p *countPolicy[V]) memory(entries int) uint64 { return uint64(entries) }

func (p *countPolicy[V]) onCreate() uint64 { return 1 }

func (p *countPolicy[V]) onAccess(entries int) bool {
	return entries > p.maxEntries
}

func (p *countPolicy[V]) onReplace(uint64, V) uint64 { return 1 }

func (p *countPolicy[V]) overLimit(int) bool { return false }

func (p *countPolicy[V]) onErase(uint64) {}

func (p *countPolicy[V]) onClear() {}

type sizePolicy[V any] struct {
	maxWeight     uint64
	currentWeight uint64
	weigher       Weigher[V]
	zeroWeight    uint64
}

func (p *sizePolicy[V]) kind() PolicyKind { return PolicySize }

func (p *sizePolicy[V]) limit() uint64 { return p.maxWeight }

func (p *sizePolicy[V]) memory(int) uint64 { return p.currentWeight }

func (p *sizePolicy[V]) onCreate() uint64 {
	p.currentWeight += p.zeroWeight
	return p.zeroWeight
}

// Touching an entry never changes its weight, so nothing is accounted or evicted here.
func (p *sizePolicy[V]) onAccess(int) bool { return false }

func (p *sizePolicy[V]) onReplace(oldWeight uint64, value V) uint64 {
	newWeight := p.weigher(value)
	p.currentWeight = p.currentWeight - oldWeight + newWeight
	return newWeight
}

// The last remaining entry is the one just replaced, it cannot be evicted to fit itself.
func (p *sizePolicy[V]) overLimit(entries int) bool {
	return p.currentWeight > p.maxWeight && entries > 1
}

func (p *sizePolicy[V]) onErase(weight uint64) {
	p.currentWeight -= weight
}

func (p *sizePolicy[V]) onClear() {
	p.currentWeight = 0
}
