/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnknownDataType is returned when the data format cannot be derived from a file extension.
var ErrUnknownDataType = errors.New("unknown configuration data type")

// DataTypeFromPath returns the data format of a configuration file by its extension:
// ".yaml" and ".yml" for YAML, ".json" for JSON.
func DataTypeFromPath(path string) (DataType, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return DataTypeYAML, nil
	case ".json":
		return DataTypeJSON, nil
	default:
		return "", fmt.Errorf("%w: file %q has extension %q, want .yaml, .yml or .json", ErrUnknownDataType, path, ext)
	}
}

// Loader fills configuration objects from a DataProvider.
// Defaults of all objects are registered before any of them is set,
// so objects sharing a key prefix see each other's defaults.
type Loader struct {
	DataProvider DataProvider
}

// NewDefaultLoader creates a viper-backed Loader that also reads environment variables
// with the given prefix (e.g. LRUMAP_CACHE_MAXENTRIES for the "cache.maxEntries" key).
func NewDefaultLoader(envVarsPrefix string) *Loader {
	va := NewViperAdapter()
	va.UseEnvVars(envVarsPrefix)
	return NewLoader(va)
}

// NewLoader creates a Loader on top of the given DataProvider.
func NewLoader(dp DataProvider) *Loader {
	return &Loader{DataProvider: dp}
}

// LoadFromPath loads configuration objects from the file at path, choosing the data format by its extension.
// An empty path means there is no file: objects get their defaults (and environment variables, if enabled).
func (l *Loader) LoadFromPath(path string, cfg Config, cfgs ...Config) error {
	if path == "" {
		return l.LoadDefaults(cfg, cfgs...)
	}
	dataType, err := DataTypeFromPath(path)
	if err != nil {
		return err
	}
	return l.LoadFromFile(path, dataType, cfg, cfgs...)
}

// LoadFromFile loads configuration objects from the file of the given data format.
func (l *Loader) LoadFromFile(path string, dataType DataType, cfg Config, cfgs ...Config) error {
	if err := l.DataProvider.SetFromFile(path, dataType); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return l.apply(cfg, cfgs)
}

// LoadFromReader loads configuration objects from the reader of the given data format.
func (l *Loader) LoadFromReader(reader io.Reader, dataType DataType, cfg Config, cfgs ...Config) error {
	if err := l.DataProvider.SetFromReader(reader, dataType); err != nil {
		return err
	}
	return l.apply(cfg, cfgs)
}

// LoadDefaults fills configuration objects without reading any configuration data.
func (l *Loader) LoadDefaults(cfg Config, cfgs ...Config) error {
	return l.apply(cfg, cfgs)
}

func (l *Loader) apply(first Config, rest []Config) error {
	all := append([]Config{first}, rest...)
	providers := make([]DataProvider, len(all))
	for i, cfg := range all {
		providers[i] = l.providerFor(cfg)
		cfg.SetProviderDefaults(providers[i])
	}
	for i, cfg := range all {
		if err := cfg.Set(providers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) providerFor(cfg Config) DataProvider {
	kp, ok := cfg.(KeyPrefixProvider)
	if !ok || kp.KeyPrefix() == "" {
		return l.DataProvider
	}
	return NewKeyPrefixedDataProvider(l.DataProvider, kp.KeyPrefix())
}
