/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package logtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acronis/go-lrumap/log"
)

func TestRecorder(t *testing.T) {
	recorder := NewRecorder()
	logger := recorder.With(log.String("cache", "sessions"))
	logger.Debug("cache entry evicted", log.Uint64("entry_weight", 3), log.String("policy", "size"))
	recorder.Info("replay finished")

	require.Len(t, recorder.Entries(), 2)

	_, found := recorder.FindEntry("unknown")
	require.False(t, found)

	entry, found := recorder.FindEntry("cache entry evicted")
	require.True(t, found)
	require.Equal(t, log.LevelDebug, entry.Level)

	weight, found := entry.FindField("entry_weight")
	require.True(t, found)
	require.Equal(t, int64(3), weight.Int)

	policy, found := entry.FindField("policy")
	require.True(t, found)
	require.Equal(t, "size", string(policy.Bytes))

	cacheName, found := entry.FindField("cache")
	require.True(t, found, "fields of With must be recorded")
	require.Equal(t, "sessions", string(cacheName.Bytes))

	require.Len(t, recorder.FindAllEntries("replay finished"), 1)

	recorder.Reset()
	require.Empty(t, recorder.Entries())
}
