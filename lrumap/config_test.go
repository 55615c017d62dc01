/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/acronis/go-lrumap/config"
)

func loadConfig(t *testing.T, cfgData string, cfg *Config) error {
	t.Helper()
	return config.NewLoader(config.NewViperAdapter()).LoadFromReader(
		bytes.NewBufferString(cfgData), config.DataTypeYAML, cfg)
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfgData     string
		options     []ConfigOption
		expectedCfg func() *Config
	}{
		{
			name:    "defaults",
			cfgData: `{}`,
			expectedCfg: func() *Config {
				return NewDefaultConfig()
			},
		},
		{
			name: "size policy",
			cfgData: `
cache:
  policy: SIZE
  maxSize: 64M
  metrics:
    namespace: replay
    constLabels:
      service: sessions
`,
			expectedCfg: func() *Config {
				cfg := NewDefaultConfig()
				cfg.Policy = PolicySize
				cfg.MaxSize = 64 * 1024 * 1024
				cfg.Metrics.Namespace = "replay"
				cfg.Metrics.ConstLabels = map[string]string{"service": "sessions"}
				return cfg
			},
		},
		{
			name:    "custom key prefix",
			options: []ConfigOption{WithKeyPrefix("storage.cache")},
			cfgData: `
storage:
  cache:
    maxEntries: 0
`,
			expectedCfg: func() *Config {
				cfg := NewDefaultConfig(WithKeyPrefix("storage.cache"))
				cfg.MaxEntries = 0
				return cfg
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.options...)
			require.NoError(t, loadConfig(t, tt.cfgData, cfg))
			require.Equal(t, tt.expectedCfg(), cfg)
		})
	}
}

func TestConfigWithInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		cfgData string
		wantErr string
	}{
		{
			name:    "unknown policy",
			cfgData: "cache:\n  policy: lfu\n",
			wantErr: `cache.policy: unknown value "lfu", should be one of [count size]`,
		},
		{
			name:    "negative max entries",
			cfgData: "cache:\n  maxEntries: -1\n",
			wantErr: "cache.maxEntries: should be >= 0",
		},
		{
			name:    "size policy without max size",
			cfgData: "cache:\n  policy: size\n",
			wantErr: `cache.maxSize: must be set when "size" policy is used`,
		},
		{
			name:    "unknown metrics key",
			cfgData: "cache:\n  metrics:\n    prefix: replay\n",
			wantErr: "cache.metrics: 1 error(s) decoding:\n\n* '' has invalid keys: prefix",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.EqualError(t, loadConfig(t, tt.cfgData, NewConfig()), tt.wantErr)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Run("count policy", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.MaxEntries = 2
		cache, err := NewFromConfig[string, string](cfg, nil, Options{})
		require.NoError(t, err)
		require.Equal(t, PolicyCount, cache.Policy())
		require.Equal(t, uint64(2), cache.MaxSize())
	})

	t.Run("size policy", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, loadConfig(t, "cache:\n  policy: size\n  maxSize: 1K\n", cfg))
		cache, err := NewFromConfig[string, string](cfg, strLen, Options{})
		require.NoError(t, err)
		require.Equal(t, PolicySize, cache.Policy())
		require.Equal(t, uint64(1024), cache.MaxSize())
	})

	t.Run("size policy without weigher", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Policy = PolicySize
		_, err := NewFromConfig[string, string](cfg, nil, Options{})
		require.ErrorIs(t, err, ErrNilWeigher)
	})

	t.Run("prometheus options", func(t *testing.T) {
		cfg := NewDefaultConfig()
		require.Equal(t, PrometheusMetricsOpts{}, cfg.PrometheusMetricsOpts())

		cfg.Metrics = MetricsConfig{Namespace: "replay", ConstLabels: map[string]string{"service": "sessions"}}
		require.Equal(t, PrometheusMetricsOpts{
			Namespace:   "replay",
			ConstLabels: prometheus.Labels{"service": "sessions"},
		}, cfg.PrometheusMetricsOpts())
	})
}
