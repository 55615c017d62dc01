/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acronis/go-lrumap/config"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfgData     string
		keyPrefix   string
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
			name: "file output",
			cfgData: `
log:
  level: DEBUG
  format: text
  output: file
  nocolor: true
  file:
    path: replay-{{pid}}.log
    rotation:
      compress: true
      maxSize: 100M
      maxBackups: 42
      maxAgeDays: 7
  addCaller: true
`,
			expectedCfg: func() *Config {
				cfg := NewDefaultConfig()
				cfg.Level = LevelDebug
				cfg.Format = FormatText
				cfg.Output = OutputFile
				cfg.NoColor = true
				cfg.File.Path = "replay-{{pid}}.log"
				cfg.File.Rotation.Compress = true
				cfg.File.Rotation.MaxSize = 100 * 1024 * 1024
				cfg.File.Rotation.MaxBackups = 42
				cfg.File.Rotation.MaxAgeDays = 7
				cfg.AddCaller = true
				return cfg
			},
		},
		{
			name:      "custom key prefix",
			keyPrefix: "replay.log",
			cfgData: `
replay:
  log:
    level: warn
    output: stderr
`,
			expectedCfg: func() *Config {
				cfg := NewDefaultConfig(WithKeyPrefix("replay.log"))
				cfg.Level = LevelWarn
				cfg.Output = OutputStderr
				return cfg
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []ConfigOption
			if tt.keyPrefix != "" {
				opts = append(opts, WithKeyPrefix(tt.keyPrefix))
			}
			cfg := NewConfig(opts...)
			err := config.NewLoader(config.NewViperAdapter()).LoadFromReader(
				bytes.NewBufferString(tt.cfgData), config.DataTypeYAML, cfg)
			require.NoError(t, err)
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
			name:    "unknown level",
			cfgData: "log:\n  level: trace\n",
			wantErr: `log.level: unknown value "trace", should be one of [error warn info debug]`,
		},
		{
			name:    "unknown output",
			cfgData: "log:\n  output: syslog\n",
			wantErr: `log.output: unknown value "syslog", should be one of [stdout stderr file]`,
		},
		{
			name:    "unknown format",
			cfgData: "log:\n  format: xml\n",
			wantErr: `log.format: unknown value "xml", should be one of [json text]`,
		},
		{
			name:    "file output without path",
			cfgData: "log:\n  output: file\n",
			wantErr: `log.file.path: cannot be empty when "file" output is used`,
		},
		{
			name:    "too small rotation size",
			cfgData: "log:\n  file:\n    rotation:\n      maxSize: 1K\n",
			wantErr: "log.file.rotation.maxSize: should be >= 1M",
		},
		{
			name:    "zero backups",
			cfgData: "log:\n  file:\n    rotation:\n      maxBackups: 0\n",
			wantErr: "log.file.rotation.maxBackups: should be >= 1",
		},
		{
			name:    "negative max age",
			cfgData: "log:\n  file:\n    rotation:\n      maxAgeDays: -1\n",
			wantErr: "log.file.rotation.maxAgeDays: should be >= 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			err := config.NewLoader(config.NewViperAdapter()).LoadFromReader(
				bytes.NewBufferString(tt.cfgData), config.DataTypeYAML, cfg)
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
