/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ViperAdapter is a DataProvider backed by a viper instance.
// Values are converted with spf13/cast, and conversion errors are prefixed with the key.
type ViperAdapter struct {
	viper *viper.Viper
}

var _ DataProvider = (*ViperAdapter)(nil)

// NewViperAdapter creates a new ViperAdapter.
func NewViperAdapter() *ViperAdapter {
	return &ViperAdapter{viper.New()}
}

// UseEnvVars makes environment variables override file values.
// The variable name is the upper-cased prefix and key joined by underscores:
// with the "lrumap" prefix, cache.maxEntries is read from LRUMAP_CACHE_MAXENTRIES.
func (va *ViperAdapter) UseEnvVars(prefix string) {
	va.viper.AutomaticEnv()
	va.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	va.viper.SetEnvPrefix(prefix)
}

// Set overrides the value of the key.
func (va *ViperAdapter) Set(key string, value interface{}) {
	va.viper.Set(key, value)
}

// SetDefault sets the value used when neither loaded data nor environment has the key.
func (va *ViperAdapter) SetDefault(key string, value interface{}) {
	va.viper.SetDefault(key, value)
}

// IsSet implements DataProvider.
func (va *ViperAdapter) IsSet(key string) bool {
	return va.viper.IsSet(key)
}

// Get implements DataProvider.
func (va *ViperAdapter) Get(key string) interface{} {
	return va.viper.Get(key)
}

// SetFromFile reads configuration data of the given format from the file.
func (va *ViperAdapter) SetFromFile(path string, dataType DataType) error {
	va.viper.SetConfigType(string(dataType))
	va.viper.SetConfigFile(path)
	return va.viper.ReadInConfig()
}

// SetFromReader reads configuration data of the given format from the reader.
func (va *ViperAdapter) SetFromReader(reader io.Reader, dataType DataType) error {
	va.viper.SetConfigType(string(dataType))
	return va.viper.ReadConfig(reader)
}

// GetInt implements DataProvider.
func (va *ViperAdapter) GetInt(key string) (int, error) {
	return getAs(va, key, cast.ToIntE)
}

// GetString implements DataProvider.
func (va *ViperAdapter) GetString(key string) (string, error) {
	return getAs(va, key, cast.ToStringE)
}

// GetBool implements DataProvider.
func (va *ViperAdapter) GetBool(key string) (bool, error) {
	return getAs(va, key, cast.ToBoolE)
}

func getAs[T any](va *ViperAdapter, key string, convert func(interface{}) (T, error)) (T, error) {
	res, err := convert(va.Get(key))
	return res, WrapKeyErrIfNeeded(key, err)
}

// GetStringFromSet reads a string that must be one of the values in set.
func (va *ViperAdapter) GetStringFromSet(key string, set []string, ignoreCase bool) (string, error) {
	str, err := va.GetString(key)
	if err != nil {
		return "", err
	}
	equal := func(a, b string) bool { return a == b }
	if ignoreCase {
		equal = strings.EqualFold
	}
	for _, s := range set {
		if equal(str, s) {
			return str, nil
		}
	}
	return "", WrapKeyErr(key, fmt.Errorf("unknown value %q, should be one of %v", str, set))
}

// GetByteSize tries to retrieve the value associated with the key as a size in bytes.
// Both integers and human-readable strings (e.g. "64MB", "1Gi") are accepted.
func (va *ViperAdapter) GetByteSize(key string) (ByteSize, error) {
	val := va.Get(key)
	if val == nil {
		return 0, nil
	}
	switch v := val.(type) {
	case ByteSize:
		return v, nil
	case float32, float64:
		num := cast.ToFloat64(val)
		if num < 0 {
			return 0, WrapKeyErr(key, fmt.Errorf("negative value is not allowed: %v", num))
		}
		return ByteSize(uint64(num)), nil
	case uint, uint8, uint16, uint32, uint64:
		return ByteSize(cast.ToUint64(val)), nil
	}
	str, err := cast.ToStringE(val)
	if err != nil {
		return 0, WrapKeyErr(key, fmt.Errorf("unsupported type for byte size: %T", val))
	}
	if str == "" {
		return 0, nil
	}
	bs, err := ParseByteSize(str)
	return bs, WrapKeyErrIfNeeded(key, err)
}

// UnmarshalKey decodes the section under the key into a struct using mapstructure tags.
// Defaults registered for keys inside the section are not merged.
func (va *ViperAdapter) UnmarshalKey(key string, rawVal interface{}, opts ...DecoderConfigOption) error {
	options := make([]viper.DecoderConfigOption, len(opts))
	for i, opt := range opts {
		options[i] = viper.DecoderConfigOption(opt)
	}
	return WrapKeyErrIfNeeded(key, va.viper.UnmarshalKey(key, rawVal, options...))
}

// WrapKeyErr implements DataProvider.
func (va *ViperAdapter) WrapKeyErr(key string, err error) error {
	return WrapKeyErr(key, err)
}
