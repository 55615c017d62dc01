/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package workload

import "github.com/acronis/go-lrumap/lrumap"

// Result summarizes a replay.
// Hits and Misses count "get" and "access" operations, the same lookups the cache reports to its MetricsCollector.
type Result struct {
	Ops     int    `json:"ops" yaml:"ops"`
	Hits    int    `json:"hits" yaml:"hits"`
	Misses  int    `json:"misses" yaml:"misses"`
	Deleted int    `json:"deleted" yaml:"deleted"`
	Len     int    `json:"len" yaml:"len"`
	Memory  uint64 `json:"memory" yaml:"memory"`
}

// StringWeigher weighs string values by their length in bytes.
func StringWeigher(s string) uint64 {
	return uint64(len(s))
}

// Replay applies ops to the cache in order.
func Replay(cache *lrumap.Cache[string, string], ops []Op) Result {
	var res Result
	for _, op := range ops {
		switch op.Kind {
		case OpSet:
			cache.Set(op.Key, op.Value)
		case OpGet:
			if _, ok := cache.Get(op.Key); ok {
				res.Hits++
			} else {
				res.Misses++
			}
		case OpAccess:
			if cache.Contains(op.Key) {
				res.Hits++
			} else {
				res.Misses++
			}
			cache.Access(op.Key)
		case OpDelete:
			res.Deleted += cache.Erase(op.Key)
		case OpClear:
			cache.Clear()
		default:
			continue
		}
		res.Ops++
	}
	res.Len = cache.Len()
	res.Memory = cache.Memory()
	return res
}
