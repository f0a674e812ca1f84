package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/molscreen/molscreen/pkg/errors"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "MOLSCREEN"

// newViper builds a pre-configured Viper instance with the application's
// standard settings: YAML file type, MOLSCREEN_ env prefix, automatic env
// binding, and a key replacer that maps "." to "_" so that nested keys like
// "model.path" resolve to "MOLSCREEN_MODEL_PATH".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Register every key with a zero default so viper knows the full key set.
	// Without this, AutomaticEnv only resolves keys that also appear in the
	// config file, and env-only deployments would silently lose overrides.
	for key, zero := range map[string]interface{}{
		"server.port":              0,
		"server.mode":              "",
		"server.read_timeout":      time.Duration(0),
		"server.write_timeout":     time.Duration(0),
		"server.shutdown_timeout":  time.Duration(0),
		"server.enable_metrics":    false,
		"model.path":               "",
		"model.watch_reload":       false,
		"training.trees":           0,
		"training.max_depth":       0,
		"training.min_samples_split": 0,
		"training.test_fraction":   0.0,
		"training.seed":            0,
		"data.dataset_path":        "",
		"log.level":                "",
		"log.format":               "",
		"log.output":               "",
	} {
		v.SetDefault(key, zero)
	}
	return v
}

// Load reads the YAML file at configPath, merges any MOLSCREEN_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoadFailed, "read config file").
			WithDetail("path=" + configPath)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MOLSCREEN_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised deployments and is also the fallback when no --config flag is
// given on the command line.
//
// Environment variable naming convention:
//
//	MOLSCREEN_<SECTION>_<FIELD>   e.g.  MOLSCREEN_MODEL_PATH, MOLSCREEN_LOG_LEVEL
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file; rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoadFailed, "unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is not called so
// the application never enters a broken state.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; errors are ignored here since callers call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
