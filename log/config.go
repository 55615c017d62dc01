/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"fmt"
	"strings"

	"github.com/acronis/go-lrumap/config"
)

// Level is the minimal severity of messages that get logged.
type Level string

// Format is the encoding of log lines.
type Format string

// Output is where log lines go.
type Output string

// Logging levels.
const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Logging formats.
const (
	FormatJSON Format = "json"
	FormatText Format = "text" // human-readable, colored unless NoColor is set
)

// Logging outputs.
const (
	OutputStdout Output = "stdout"
	OutputStderr Output = "stderr"
	OutputFile   Output = "file"
)

// Bounds of file rotation settings.
const (
	DefaultFileRotationMaxSizeBytes = 250 * 1024 * 1024
	MinFileRotationMaxSizeBytes     = 1024 * 1024

	DefaultFileRotationMaxBackups = 10
	MinFileRotationMaxBackups     = 1
)

const cfgDefaultKeyPrefix = "log"

// Keys relative to the key prefix.
const (
	cfgKeyLevel                        = "level"
	cfgKeyFormat                       = "format"
	cfgKeyOutput                       = "output"
	cfgKeyNoColor                      = "nocolor"
	cfgKeyAddCaller                    = "addCaller"
	cfgKeyFilePath                     = "file.path"
	cfgKeyFileRotationCompress         = "file.rotation.compress"
	cfgKeyFileRotationMaxSize          = "file.rotation.maxSize"
	cfgKeyFileRotationMaxBackups       = "file.rotation.maxBackups"
	cfgKeyFileRotationMaxAgeDays       = "file.rotation.maxAgeDays"
	cfgKeyFileRotationLocalTimeInNames = "file.rotation.localTimeInNames"
)

// Config configures the logger created by NewLogger.
type Config struct {
	Level   Level            `yaml:"level" json:"level"`
	Format  Format           `yaml:"format" json:"format"`
	Output  Output           `yaml:"output" json:"output"`
	NoColor bool             `yaml:"nocolor" json:"nocolor"`
	File    FileOutputConfig `yaml:"file" json:"file"`

	// AddCaller adds the package/file:line of the logging call to every message.
	AddCaller bool `yaml:"addCaller" json:"addCaller"`

	keyPrefix string
}

// FileOutputConfig is used when Output is OutputFile.
// Path may contain {{pid}} and {{starttime}} placeholders.
type FileOutputConfig struct {
	Path     string             `yaml:"path" json:"path"`
	Rotation FileRotationConfig `yaml:"rotation" json:"rotation"`
}

// FileRotationConfig maps to lumberjack settings. MaxSize is rounded down to whole megabytes.
type FileRotationConfig struct {
	Compress         bool            `yaml:"compress" json:"compress"`
	MaxSize          config.ByteSize `yaml:"maxSize" json:"maxSize"`
	MaxBackups       int             `yaml:"maxBackups" json:"maxBackups"`
	MaxAgeDays       int             `yaml:"maxAgeDays" json:"maxAgeDays"`
	LocalTimeInNames bool            `yaml:"localTimeInNames" json:"localTimeInNames"`
}

var (
	_ config.Config            = (*Config)(nil)
	_ config.KeyPrefixProvider = (*Config)(nil)
)

// ConfigOption customizes a Config created by NewConfig or NewDefaultConfig.
type ConfigOption func(*Config)

// WithKeyPrefix makes config.Loader read the logger settings under the given key instead of "log".
func WithKeyPrefix(keyPrefix string) ConfigOption {
	return func(c *Config) {
		c.keyPrefix = keyPrefix
	}
}

// NewConfig creates an empty Config to be filled by config.Loader.
func NewConfig(options ...ConfigOption) *Config {
	cfg := &Config{keyPrefix: cfgDefaultKeyPrefix}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// NewDefaultConfig creates a Config holding the values config.Loader uses for absent keys.
func NewDefaultConfig(options ...ConfigOption) *Config {
	cfg := NewConfig(options...)
	cfg.Level = LevelInfo
	cfg.Format = FormatJSON
	cfg.Output = OutputStdout
	cfg.File.Rotation.MaxSize = DefaultFileRotationMaxSizeBytes
	cfg.File.Rotation.MaxBackups = DefaultFileRotationMaxBackups
	return cfg
}

// KeyPrefix implements config.KeyPrefixProvider.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults implements config.Config.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	def := NewDefaultConfig()
	dp.SetDefault(cfgKeyLevel, string(def.Level))
	dp.SetDefault(cfgKeyFormat, string(def.Format))
	dp.SetDefault(cfgKeyOutput, string(def.Output))
	dp.SetDefault(cfgKeyFileRotationMaxSize, def.File.Rotation.MaxSize.String())
	dp.SetDefault(cfgKeyFileRotationMaxBackups, def.File.Rotation.MaxBackups)
}

// Accepted values in the order they are shown in errors.
var (
	availableLevels  = []Level{LevelError, LevelWarn, LevelInfo, LevelDebug}
	availableFormats = []Format{FormatJSON, FormatText}
	availableOutputs = []Output{OutputStdout, OutputStderr, OutputFile}
)

// Set implements config.Config.
func (c *Config) Set(dp config.DataProvider) (err error) {
	if c.Level, err = getOneOf(dp, cfgKeyLevel, availableLevels); err != nil {
		return err
	}
	if c.Format, err = getOneOf(dp, cfgKeyFormat, availableFormats); err != nil {
		return err
	}
	if c.Output, err = getOneOf(dp, cfgKeyOutput, availableOutputs); err != nil {
		return err
	}

	if c.File.Path, err = dp.GetString(cfgKeyFilePath); err != nil {
		return err
	}
	if c.Output == OutputFile && c.File.Path == "" {
		return dp.WrapKeyErr(cfgKeyFilePath, fmt.Errorf("cannot be empty when %q output is used", OutputFile))
	}
	if err = c.File.Rotation.set(dp); err != nil {
		return err
	}

	if c.AddCaller, err = dp.GetBool(cfgKeyAddCaller); err != nil {
		return err
	}
	c.NoColor, err = dp.GetBool(cfgKeyNoColor)
	return err
}

func (r *FileRotationConfig) set(dp config.DataProvider) (err error) {
	if r.MaxSize, err = dp.GetByteSize(cfgKeyFileRotationMaxSize); err != nil {
		return err
	}
	if r.MaxSize < MinFileRotationMaxSizeBytes {
		return dp.WrapKeyErr(cfgKeyFileRotationMaxSize,
			fmt.Errorf("should be >= %s", config.ByteSize(MinFileRotationMaxSizeBytes)))
	}
	if r.MaxBackups, err = getIntAtLeast(dp, cfgKeyFileRotationMaxBackups, MinFileRotationMaxBackups); err != nil {
		return err
	}
	if r.MaxAgeDays, err = getIntAtLeast(dp, cfgKeyFileRotationMaxAgeDays, 0); err != nil {
		return err
	}
	if r.Compress, err = dp.GetBool(cfgKeyFileRotationCompress); err != nil {
		return err
	}
	r.LocalTimeInNames, err = dp.GetBool(cfgKeyFileRotationLocalTimeInNames)
	return err
}

// getOneOf reads a case-insensitive value that must be one of the given ones.
func getOneOf[T ~string](dp config.DataProvider, key string, values []T) (T, error) {
	set := make([]string, len(values))
	for i, v := range values {
		set[i] = string(v)
	}
	str, err := dp.GetStringFromSet(key, set, true)
	if err != nil {
		return "", err
	}
	return T(strings.ToLower(str)), nil
}

func getIntAtLeast(dp config.DataProvider, key string, minValue int) (int, error) {
	val, err := dp.GetInt(key)
	if err != nil {
		return 0, err
	}
	if val < minValue {
		return 0, dp.WrapKeyErr(key, fmt.Errorf("should be >= %d", minValue))
	}
	return val, nil
}
