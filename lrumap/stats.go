/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import "go.uber.org/atomic"

// Stats is a MetricsCollector that keeps counters in memory.
// The cache itself is single-owner, but Stats may be read from any goroutine.
type Stats struct {
	amount    atomic.Int64
	weight    atomic.Uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

var _ MetricsCollector = (*Stats)(nil)

// StatsSnapshot is a point-in-time copy of Stats.
// Hits and Misses count every lookup: each Get and each Access, including an Access that creates the entry.
// Set is not a lookup and is not counted.
type StatsSnapshot struct {
	Amount    int    `json:"amount" yaml:"amount"`
	Weight    uint64 `json:"weight" yaml:"weight"`
	Hits      uint64 `json:"hits" yaml:"hits"`
	Misses    uint64 `json:"misses" yaml:"misses"`
	Evictions uint64 `json:"evictions" yaml:"evictions"`
}

// HitRatio returns hits / (hits + misses), or 0 if there were no lookups.
func (s StatsSnapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// SetAmount sets the total number of entries in the cache.
func (s *Stats) SetAmount(n int) { s.amount.Store(int64(n)) }

// SetWeight sets the running weight of all entries in the cache.
func (s *Stats) SetWeight(w uint64) { s.weight.Store(w) }

// IncHits increments the number of hits.
func (s *Stats) IncHits() { s.hits.Inc() }

// IncMisses increments the number of misses.
func (s *Stats) IncMisses() { s.misses.Inc() }

// AddEvictions adds n to the number of evictions.
func (s *Stats) AddEvictions(n int) { s.evictions.Add(uint64(n)) }

// Snapshot returns the current values of all counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Amount:    int(s.amount.Load()),
		Weight:    s.weight.Load(),
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evictions.Load(),
	}
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	s.amount.Store(0)
	s.weight.Store(0)
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
}
