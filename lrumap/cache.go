/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import (
	"errors"

	"github.com/acronis/go-lrumap/internal/recency"
	"github.com/acronis/go-lrumap/log"
)

// ErrNilHasher is returned when a cache is created without a Hasher.
var ErrNilHasher = errors.New("hasher must not be nil")

// Options represents options for the cache.
type Options struct {
	// MetricsCollector is used to collect statistics about cache usage.
	// It can be nil, in this case, metrics will be disabled.
	MetricsCollector MetricsCollector

	// Logger receives debug messages about evictions. It can be nil.
	Logger log.FieldLogger
}

// Cache is a map-like container that evicts the least recently used entries
// when its eviction policy bound is exceeded.
//
// Cache is not safe for concurrent use. It doesn't support iteration.
type Cache[K any, V any] struct {
	table   *entryTable[K, V]
	recency *recency.List[*entry[K, V]]
	policy  evictionPolicy[V]

	// epoch is bumped by Swap so that handles issued before it stop being live.
	epoch uint64

	metricsCollector MetricsCollector
	logger           log.FieldLogger
}

// New creates a new Cache for comparable keys with the provided eviction policy.
func New[K comparable, V any](policy EvictionPolicy[V], opts Options) (*Cache[K, V], error) {
	return NewWithHasher[K, V](NewComparableHasher[K](), policy, opts)
}

// NewCountBounded creates a new Cache that keeps at most maxEntries entries.
func NewCountBounded[K comparable, V any](maxEntries int, opts Options) (*Cache[K, V], error) {
	return New[K, V](CountPolicy[V](maxEntries), opts)
}

// NewSizeBounded creates a new Cache that keeps the total weight of values at most maxWeight.
func NewSizeBounded[K comparable, V any](maxWeight uint64, weigher Weigher[V], opts Options) (*Cache[K, V], error) {
	return New[K, V](SizePolicy[V](maxWeight, weigher), opts)
}

// NewWithHasher creates a new Cache that locates keys with the provided Hasher.
// It allows using keys that are not comparable (e.g. []byte with BytesHasher).
func NewWithHasher[K any, V any](hasher Hasher[K], policy EvictionPolicy[V], opts Options) (*Cache[K, V], error) {
	if hasher == nil {
		return nil, ErrNilHasher
	}
	p, err := policy.build()
	if err != nil {
		return nil, err
	}
	if opts.MetricsCollector == nil {
		opts.MetricsCollector = disabledMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewDisabledLogger()
	}
	return &Cache[K, V]{
		table:            newEntryTable[K, V](hasher),
		recency:          recency.New[*entry[K, V]](),
		policy:           p,
		metricsCollector: opts.MetricsCollector,
		logger:           opts.Logger,
	}, nil
}

// Access returns a handle to the entry for the key, creating a zero-valued entry if the key is absent.
// The entry becomes the most recently used one. Access counts as a hit or a miss in metrics.
//
// Under the count policy the least recently used entry is evicted right away if the cache overflows.
// Under the size policy nothing is evicted until the value is replaced through the handle.
func (c *Cache[K, V]) Access(key K) Handle[K, V] {
	e, created := c.access(key)
	if created {
		c.metricsCollector.IncMisses()
	} else {
		c.metricsCollector.IncHits()
	}
	return Handle[K, V]{cache: c, entry: e, epoch: c.epoch}
}

// Set stores the value for the key. It is equivalent to Access(key).Replace(value)
// except that it isn't counted as a hit or a miss in metrics.
func (c *Cache[K, V]) Set(key K, value V) {
	e, _ := c.access(key)
	if !e.dead {
		c.replace(e, value)
	}
}

func (c *Cache[K, V]) access(key K) (e *entry[K, V], created bool) {
	e, created = c.table.getOrCreate(key)
	if created {
		e.pos = c.recency.PushFront(e)
		e.weight = c.policy.onCreate()
	} else {
		c.recency.MoveToFront(e.pos)
	}

	evicted := 0
	if c.policy.onAccess(c.table.len()) && c.evictOldest() {
		evicted++
	}
	c.updateMetrics(created || evicted > 0, evicted)
	return e, created
}

// Get returns the value for the key without creating an entry.
// On hit the entry becomes the most recently used one.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	e := c.table.lookup(key)
	if e == nil {
		c.metricsCollector.IncMisses()
		return value, false
	}
	c.recency.MoveToFront(e.pos)
	c.metricsCollector.IncHits()
	return e.value, true
}

// Contains reports whether the key is in the cache. It doesn't change the recency order.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.table.lookup(key) != nil
}

// Erase removes the entry for the key and returns the number of removed entries (0 or 1).
func (c *Cache[K, V]) Erase(key K) int {
	e := c.table.erase(key)
	if e == nil {
		return 0
	}
	c.recency.Remove(e.pos)
	c.policy.onErase(e.weight)
	e.dead = true
	c.updateMetrics(true, 0)
	return 1
}

// Clear removes all entries. Removed entries are not counted as evictions.
func (c *Cache[K, V]) Clear() {
	c.table.reset()
	c.recency.Reset()
	c.policy.onClear()
	c.updateMetrics(true, 0)
}

// Swap exchanges the contents of two caches in O(1): entries, recency order, and eviction policy with its state.
// Each cache keeps its own metrics collector and logger.
// Handles issued by either cache before the call stop being live.
func (c *Cache[K, V]) Swap(other *Cache[K, V]) {
	if c == other {
		return
	}
	c.table, other.table = other.table, c.table
	c.recency, other.recency = other.recency, c.recency
	c.policy, other.policy = other.policy, c.policy
	c.epoch++
	other.epoch++
	c.updateMetrics(true, 0)
	other.updateMetrics(true, 0)
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return c.table.len()
}

// Empty reports whether the cache has no entries.
func (c *Cache[K, V]) Empty() bool {
	return c.table.len() == 0
}

// Memory returns the running weight of all entries.
// Under the count policy every entry weighs one, so it equals Len.
func (c *Cache[K, V]) Memory() uint64 {
	return c.policy.memory(c.table.len())
}

// MaxSize returns the bound the cache was created with: number of entries or total weight.
func (c *Cache[K, V]) MaxSize() uint64 {
	return c.policy.limit()
}

// Policy returns the kind of the eviction policy.
func (c *Cache[K, V]) Policy() PolicyKind {
	return c.policy.kind()
}

// Hasher returns the hasher used to locate keys.
func (c *Cache[K, V]) Hasher() Hasher[K] {
	return c.table.hasher
}

func (c *Cache[K, V]) replace(e *entry[K, V], value V) (old V) {
	old = e.value
	e.value = value
	e.weight = c.policy.onReplace(e.weight, value)
	c.recency.MoveToFront(e.pos)

	evicted := 0
	for c.policy.overLimit(c.table.len()) && c.evictOldest() {
		evicted++
	}
	c.updateMetrics(true, evicted)
	return old
}

func (c *Cache[K, V]) evictOldest() bool {
	e, ok := c.recency.PopLeastRecent()
	if !ok {
		return false
	}
	c.table.remove(e)
	c.policy.onErase(e.weight)
	e.dead = true
	c.logger.Debug("cache entry evicted",
		log.String("policy", string(c.policy.kind())),
		log.Uint64("entry_weight", e.weight),
		log.Int("entries", c.table.len()),
		log.Uint64("memory", c.Memory()),
	)
	return true
}

func (c *Cache[K, V]) updateMetrics(changed bool, evicted int) {
	if evicted > 0 {
		c.metricsCollector.AddEvictions(evicted)
	}
	if !changed {
		return
	}
	c.metricsCollector.SetAmount(c.table.len())
	c.metricsCollector.SetWeight(c.Memory())
}
