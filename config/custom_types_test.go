/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		input string
		want  ByteSize
	}{
		{"0", 0},
		{" 4096 ", 4096},
		{"1K", 1024},
		{"1KB", 1024},
		{"1Ki", 1024},
		{"3Gi", 3 * 1024 * 1024 * 1024},
		{"1.5M", 1536 * 1024},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseByteSize(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	for _, input := range []string{"", "-1", "i", "10 apples"} {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := ParseByteSize(input)
			require.Error(t, err)
		})
	}
}

func TestByteSize_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"integer", `1024`, ByteSize(1024), false},
		{"human-readable", `"10MB"`, ByteSize(10 * 1024 * 1024), false},
		{"k8s suffix", `"1Mi"`, ByteSize(1024 * 1024), false},
		{"negative", `-5`, 0, true},
		{"garbage", `"many"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b ByteSize
			err := json.Unmarshal([]byte(tt.input), &b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, b)
		})
	}
}

func TestByteSize_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		MaxSize ByteSize `yaml:"maxSize"`
		Raw     ByteSize `yaml:"raw"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("maxSize: 2GB\nraw: 512\n"), &cfg))
	require.Equal(t, ByteSize(2*1024*1024*1024), cfg.MaxSize)
	require.Equal(t, ByteSize(512), cfg.Raw)

	require.Error(t, yaml.Unmarshal([]byte("maxSize: lots\n"), &cfg))
	require.ErrorContains(t, yaml.Unmarshal([]byte("maxSize: [1, 2]\n"), &cfg), "scalar expected at line 1")
}

func TestByteSize_Marshal(t *testing.T) {
	b := ByteSize(64 * 1024 * 1024)
	require.Equal(t, "64M", b.String())

	data, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, `"64M"`, string(data))

	var decoded ByteSize
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, b, decoded)

	yamlData, err := yaml.Marshal(map[string]ByteSize{"maxSize": b})
	require.NoError(t, err)
	require.Equal(t, "maxSize: 64M\n", string(yamlData))
}
