/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCacheConfigYAML = `
cache:
  policy: Size
  maxEntries: 10
  maxSize: 64MB
  rawSize: 1024
  metrics:
    namespace: replay
    constLabels:
      cache: sessions
`

func TestViperAdapter_Getters(t *testing.T) {
	va := NewViperAdapter()
	require.NoError(t, va.SetFromReader(bytes.NewBufferString(testCacheConfigYAML), DataTypeYAML))

	require.True(t, va.IsSet("cache.policy"))
	require.False(t, va.IsSet("cache.unknown"))

	maxEntries, err := va.GetInt("cache.maxEntries")
	require.NoError(t, err)
	require.Equal(t, 10, maxEntries)

	policy, err := va.GetStringFromSet("cache.policy", []string{"count", "size"}, true)
	require.NoError(t, err)
	require.Equal(t, "Size", policy)

	_, err = va.GetStringFromSet("cache.policy", []string{"count", "size"}, false)
	require.EqualError(t, err, `cache.policy: unknown value "Size", should be one of [count size]`)

	namespace, err := va.GetString("cache.metrics.namespace")
	require.NoError(t, err)
	require.Equal(t, "replay", namespace)
}

func TestViperAdapter_GetByteSize(t *testing.T) {
	va := NewViperAdapter()
	require.NoError(t, va.SetFromReader(bytes.NewBufferString(testCacheConfigYAML), DataTypeYAML))

	tests := []struct {
		name    string
		key     string
		value   interface{}
		want    ByteSize
		wantErr bool
	}{
		{name: "human-readable string from file", key: "cache.maxSize", want: 64 * 1024 * 1024},
		{name: "integer from file", key: "cache.rawSize", want: 1024},
		{name: "absent key", key: "cache.absent", want: 0},
		{name: "k8s suffix", key: "test.k8s", value: "2Ki", want: 2048},
		{name: "negative integer", key: "test.negative", value: -1, wantErr: true},
		{name: "garbage string", key: "test.garbage", value: "lots", wantErr: true},
		{name: "unsupported type", key: "test.bool", value: true, wantErr: true},
		{name: "list", key: "test.list", value: []string{"1K"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != nil {
				va.Set(tt.key, tt.value)
			}
			got, err := va.GetByteSize(tt.key)
			if tt.wantErr {
				require.ErrorContains(t, err, tt.key)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestViperAdapter_UnmarshalKey(t *testing.T) {
	type metricsCfg struct {
		Namespace   string            `mapstructure:"namespace"`
		ConstLabels map[string]string `mapstructure:"constLabels"`
	}

	newProvider := func(t *testing.T, data string) DataProvider {
		dp := NewKeyPrefixedDataProvider(NewViperAdapter(), "cache")
		require.NoError(t, dp.SetFromReader(bytes.NewBufferString(data), DataTypeYAML))
		return dp
	}

	t.Run("section", func(t *testing.T) {
		var mc metricsCfg
		require.NoError(t, newProvider(t, testCacheConfigYAML).UnmarshalKey("metrics", &mc, WithUnknownKeysCheck()))
		require.Equal(t, metricsCfg{Namespace: "replay", ConstLabels: map[string]string{"cache": "sessions"}}, mc)
	})

	t.Run("absent section", func(t *testing.T) {
		var mc metricsCfg
		require.NoError(t, newProvider(t, "cache:\n  policy: count\n").UnmarshalKey("metrics", &mc, WithUnknownKeysCheck()))
		require.Equal(t, metricsCfg{}, mc)
	})

	const misspelledYAML = `
cache:
  metrics:
    namespace: replay
    constLabel:
      cache: sessions
`
	t.Run("unknown keys are ignored by default", func(t *testing.T) {
		var mc metricsCfg
		require.NoError(t, newProvider(t, misspelledYAML).UnmarshalKey("metrics", &mc))
		require.Equal(t, metricsCfg{Namespace: "replay"}, mc)
	})

	t.Run("unknown keys check", func(t *testing.T) {
		var mc metricsCfg
		err := newProvider(t, misspelledYAML).UnmarshalKey("metrics", &mc, WithUnknownKeysCheck())
		require.ErrorContains(t, err, "cache.metrics: ")
		require.ErrorContains(t, err, "constlabel")
	})
}

func TestWrapKeyErrIfNeeded(t *testing.T) {
	require.NoError(t, WrapKeyErrIfNeeded("cache.policy", nil))

	errInvalid := errors.New("invalid policy")
	err := WrapKeyErrIfNeeded("cache.policy", errInvalid)
	require.EqualError(t, err, "cache.policy: invalid policy")
	require.ErrorIs(t, err, errInvalid)

	kp := NewKeyPrefixedDataProvider(NewViperAdapter(), "cache")
	require.EqualError(t, kp.WrapKeyErr("policy", errInvalid), "cache.policy: invalid policy")
}
