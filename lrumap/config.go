/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrumap

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/acronis/go-lrumap/config"
)

const cfgDefaultKeyPrefix = "cache"

const (
	cfgKeyPolicy     = "policy"
	cfgKeyMaxEntries = "maxEntries"
	cfgKeyMaxSize    = "maxSize"
	cfgKeyMetrics    = "metrics"
)

// DefaultMaxEntries is the default bound of count-bounded caches created from Config.
const DefaultMaxEntries = 1000

// Config represents a set of configuration parameters for a cache.
type Config struct {
	// Policy is either "count" or "size".
	Policy PolicyKind `mapstructure:"policy" yaml:"policy" json:"policy"`

	// MaxEntries bounds the number of entries for the count policy.
	MaxEntries int `mapstructure:"maxEntries" yaml:"maxEntries" json:"maxEntries"`

	// MaxSize bounds the total weight of values for the size policy.
	// It accepts human-readable values (e.g. "64MB") for weighers that return sizes in bytes.
	MaxSize config.ByteSize `mapstructure:"maxSize" yaml:"maxSize" json:"maxSize"`

	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	keyPrefix string
}

// MetricsConfig configures Prometheus metrics of the cache.
type MetricsConfig struct {
	Namespace   string            `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
	ConstLabels map[string]string `mapstructure:"constLabels" yaml:"constLabels" json:"constLabels"`
}

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// ConfigOption is a type for functional options for the Config.
type ConfigOption func(*configOptions)

type configOptions struct {
	keyPrefix string
}

// WithKeyPrefix returns a ConfigOption that sets a key prefix for parsing configuration parameters.
// This prefix will be used by config.Loader.
func WithKeyPrefix(keyPrefix string) ConfigOption {
	return func(o *configOptions) {
		o.keyPrefix = keyPrefix
	}
}

// NewConfig creates a new instance of the Config.
func NewConfig(options ...ConfigOption) *Config {
	opts := configOptions{keyPrefix: cfgDefaultKeyPrefix}
	for _, opt := range options {
		opt(&opts)
	}
	return &Config{keyPrefix: opts.keyPrefix}
}

// NewDefaultConfig creates a new instance of the Config with default values.
func NewDefaultConfig(options ...ConfigOption) *Config {
	cfg := NewConfig(options...)
	cfg.Policy = PolicyCount
	cfg.MaxEntries = DefaultMaxEntries
	return cfg
}

// KeyPrefix returns a key prefix with which all configuration parameters should be presented.
// Implements config.KeyPrefixProvider interface.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults sets default configuration values for cache in config.DataProvider.
// Implements config.Config interface.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyPolicy, string(PolicyCount))
	dp.SetDefault(cfgKeyMaxEntries, DefaultMaxEntries)
}

// Set sets cache configuration values from config.DataProvider.
// Implements config.Config interface.
func (c *Config) Set(dp config.DataProvider) error {
	policy, err := dp.GetStringFromSet(cfgKeyPolicy, []string{string(PolicyCount), string(PolicySize)}, true)
	if err != nil {
		return err
	}
	c.Policy = PolicyKind(strings.ToLower(policy))

	if c.MaxEntries, err = dp.GetInt(cfgKeyMaxEntries); err != nil {
		return err
	}
	if c.MaxEntries < 0 {
		return dp.WrapKeyErr(cfgKeyMaxEntries, fmt.Errorf("should be >= 0"))
	}

	if c.MaxSize, err = dp.GetByteSize(cfgKeyMaxSize); err != nil {
		return err
	}
	if c.Policy == PolicySize && !dp.IsSet(cfgKeyMaxSize) {
		return dp.WrapKeyErr(cfgKeyMaxSize, fmt.Errorf("must be set when %q policy is used", PolicySize))
	}

	c.Metrics = MetricsConfig{}
	return dp.UnmarshalKey(cfgKeyMetrics, &c.Metrics, config.WithUnknownKeysCheck())
}

// EvictionPolicyFromConfig returns the eviction policy described by the configuration.
// The weigher is used only by the size policy.
func EvictionPolicyFromConfig[V any](cfg *Config, weigher Weigher[V]) (EvictionPolicy[V], error) {
	switch cfg.Policy {
	case PolicyCount, "":
		return CountPolicy[V](cfg.MaxEntries), nil
	case PolicySize:
		if weigher == nil {
			return EvictionPolicy[V]{}, fmt.Errorf("size policy: %w", ErrNilWeigher)
		}
		return SizePolicy[V](uint64(cfg.MaxSize), weigher), nil
	}
	return EvictionPolicy[V]{}, fmt.Errorf("unknown eviction policy %q", cfg.Policy)
}

// NewFromConfig creates a new Cache for comparable keys using the configuration.
func NewFromConfig[K comparable, V any](cfg *Config, weigher Weigher[V], opts Options) (*Cache[K, V], error) {
	policy, err := EvictionPolicyFromConfig(cfg, weigher)
	if err != nil {
		return nil, err
	}
	return New[K, V](policy, opts)
}

// PrometheusMetricsOpts returns options for NewPrometheusMetricsWithOpts built from the configuration.
func (c *Config) PrometheusMetricsOpts() PrometheusMetricsOpts {
	var constLabels prometheus.Labels
	if len(c.Metrics.ConstLabels) != 0 {
		constLabels = make(prometheus.Labels, len(c.Metrics.ConstLabels))
		for k, v := range c.Metrics.ConstLabels {
			constLabels[k] = v
		}
	}
	return PrometheusMetricsOpts{Namespace: c.Metrics.Namespace, ConstLabels: constLabels}
}
