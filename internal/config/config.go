// Package config resolves qsamples settings from defaults, an optional
// qsamples.toml, QSAMPLES_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/roach88/querysamples/internal/runner"
)

// FileName is the project configuration file searched for from the
// working directory upwards.
const FileName = "qsamples.toml"

// EnvPrefix prefixes environment overrides, e.g. QSAMPLES_BACKEND=sql.
const EnvPrefix = "QSAMPLES"

// Keys.
const (
	KeyDataset = "dataset"
	KeyFormat  = "format"
	KeyVerbose = "verbose"
	KeyBackend = "backend"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

// Config is the resolved configuration.
type Config struct {
	// Dataset is a dataset file path. Empty selects the embedded dataset.
	Dataset string `mapstructure:"dataset"`

	// Format is text or json.
	Format string `mapstructure:"format"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`

	// Backend is memory or sql.
	Backend string `mapstructure:"backend"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataset, "")
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyBackend, string(runner.BackendMemory))
}

// New creates a viper instance with defaults and environment binding, and
// reads configFile. With an empty configFile the nearest qsamples.toml is
// used if there is one; an explicit path that cannot be read is an error.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	path := configFile
	if path == "" {
		path = findProjectConfig()
	}
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "read config file %s", path),
			"the config file is TOML with the keys dataset, format, verbose and backend",
		)
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return errors.Newf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if _, err := runner.ParseBackend(c.Backend); err != nil {
		return errors.Wrap(err, "invalid backend")
	}
	return nil
}

// UsedFile returns the config file v was read from, or "".
func UsedFile(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

// findProjectConfig walks up from the working directory looking for
// FileName and returns "" if none is found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
