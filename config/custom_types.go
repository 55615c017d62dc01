/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v3"
)

// ByteSize is a size in bytes, e.g. the weight bound of a size-bounded cache or the rotation size of a log file.
// In configuration it may be written as an integer or as a human-readable string ("64MB", "1Gi").
// It is encoded back as a human-readable string.
type ByteSize uint64

// ParseByteSize parses a number of bytes or a human-readable size.
// Both "M"/"MB" and Kubernetes-style "Mi" suffixes mean powers of 1024.
func ParseByteSize(s string) (ByteSize, error) {
	v := strings.TrimSpace(s)
	if num, err := strconv.ParseInt(v, 10, 64); err == nil {
		if num < 0 {
			return 0, fmt.Errorf("negative value is not allowed: %d", num)
		}
		return ByteSize(num), nil
	}
	if len(v) > 2 && v[len(v)-1] == 'i' {
		v = v[:len(v)-1] // "Mi" -> "M"
	}
	num, err := bytefmt.ToBytes(v)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size format (%s): %w", s, err)
	}
	return ByteSize(num), nil
}

// String returns the human-readable representation (e.g. "64M").
func (b ByteSize) String() string {
	return bytefmt.ByteSize(uint64(b))
}

// UnmarshalJSON decodes a JSON number or string.
func (b *ByteSize) UnmarshalJSON(data []byte) error {
	parsed, err := ParseByteSize(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalJSON encodes the size as a human-readable JSON string.
func (b ByteSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalYAML decodes a YAML scalar.
func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid byte size format: scalar expected at line %d", value.Line)
	}
	parsed, err := ParseByteSize(value.Value)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalYAML encodes the size as a human-readable YAML string.
func (b ByteSize) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}
