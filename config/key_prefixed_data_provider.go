/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import "strings"

// KeyPrefixedDataProvider scopes a DataProvider to a section: every key is resolved relative to the prefix,
// so "maxEntries" with the "cache" prefix reads "cache.maxEntries".
// Loading data and enabling environment variables go straight to the underlying provider.
type KeyPrefixedDataProvider struct {
	DataProvider
	keyPrefix string
}

var _ DataProvider = (*KeyPrefixedDataProvider)(nil)

// NewKeyPrefixedDataProvider creates a new KeyPrefixedDataProvider on top of the given one.
func NewKeyPrefixedDataProvider(delegate DataProvider, keyPrefix string) *KeyPrefixedDataProvider {
	return &KeyPrefixedDataProvider{DataProvider: delegate, keyPrefix: keyPrefix}
}

func (kp *KeyPrefixedDataProvider) fullKey(key string) string {
	return strings.Trim(kp.keyPrefix+"."+key, ".")
}

// Set implements DataProvider.
func (kp *KeyPrefixedDataProvider) Set(key string, value interface{}) {
	kp.DataProvider.Set(kp.fullKey(key), value)
}

// SetDefault implements DataProvider.
func (kp *KeyPrefixedDataProvider) SetDefault(key string, value interface{}) {
	kp.DataProvider.SetDefault(kp.fullKey(key), value)
}

// IsSet implements DataProvider.
func (kp *KeyPrefixedDataProvider) IsSet(key string) bool {
	return kp.DataProvider.IsSet(kp.fullKey(key))
}

// Get implements DataProvider.
func (kp *KeyPrefixedDataProvider) Get(key string) interface{} {
	return kp.DataProvider.Get(kp.fullKey(key))
}

// GetBool implements DataProvider.
func (kp *KeyPrefixedDataProvider) GetBool(key string) (bool, error) {
	return kp.DataProvider.GetBool(kp.fullKey(key))
}

// GetInt implements DataProvider.
func (kp *KeyPrefixedDataProvider) GetInt(key string) (int, error) {
	return kp.DataProvider.GetInt(kp.fullKey(key))
}

// GetString implements DataProvider.
func (kp *KeyPrefixedDataProvider) GetString(key string) (string, error) {
	return kp.DataProvider.GetString(kp.fullKey(key))
}

// GetStringFromSet implements DataProvider.
func (kp *KeyPrefixedDataProvider) GetStringFromSet(key string, set []string, ignoreCase bool) (string, error) {
	return kp.DataProvider.GetStringFromSet(kp.fullKey(key), set, ignoreCase)
}

// GetByteSize implements DataProvider.
func (kp *KeyPrefixedDataProvider) GetByteSize(key string) (ByteSize, error) {
	return kp.DataProvider.GetByteSize(kp.fullKey(key))
}

// UnmarshalKey implements DataProvider.
func (kp *KeyPrefixedDataProvider) UnmarshalKey(key string, rawVal interface{}, opts ...DecoderConfigOption) error {
	return kp.DataProvider.UnmarshalKey(kp.fullKey(key), rawVal, opts...)
}

// WrapKeyErr implements DataProvider.
func (kp *KeyPrefixedDataProvider) WrapKeyErr(key string, err error) error {
	return kp.DataProvider.WrapKeyErr(kp.fullKey(key), err)
}
