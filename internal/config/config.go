// Package config defines all configuration structures for molscreen.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"time"

	"github.com/molscreen/molscreen/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables for serve mode.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableMetrics   bool          `mapstructure:"enable_metrics"`
}

// ModelConfig holds the location and hot-reload behaviour of the trained
// solubility model artifact.
type ModelConfig struct {
	// Path is where the JSON model artifact is written by `molscreen train`
	// and read by every prediction surface.
	Path string `mapstructure:"path"`

	// WatchReload enables fsnotify-based hot reloading of the artifact in
	// serve mode, so a retrained model is picked up without a restart.
	WatchReload bool `mapstructure:"watch_reload"`
}

// TrainingConfig holds the Random Forest hyperparameters and the data split.
type TrainingConfig struct {
	Trees           int     `mapstructure:"trees"`
	MaxDepth        int     `mapstructure:"max_depth"`
	MinSamplesSplit int     `mapstructure:"min_samples_split"`
	TestFraction    float64 `mapstructure:"test_fraction"`
	Seed            uint64  `mapstructure:"seed"`
}

// DataConfig holds dataset locations.
type DataConfig struct {
	// DatasetPath points to a CSV of name,smiles,logS rows.  Empty means the
	// embedded aqueous solubility training set is used.
	DatasetPath string `mapstructure:"dataset_path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the application.  Every
// component reads its settings from the relevant sub-struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Training TrainingConfig `mapstructure:"training"`
	Data     DataConfig     `mapstructure:"data"`
	Log      LogConfig      `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid, "server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Model
	if c.Model.Path == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "model.path is required")
	}

	// Training
	if c.Training.Trees < 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "training.trees must be >= 1, got %d", c.Training.Trees)
	}
	if c.Training.MaxDepth < 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "training.max_depth must be >= 1, got %d", c.Training.MaxDepth)
	}
	if c.Training.MinSamplesSplit < 2 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "training.min_samples_split must be >= 2, got %d", c.Training.MinSamplesSplit)
	}
	if c.Training.TestFraction < 0 || c.Training.TestFraction >= 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "training.test_fraction %g is out of range [0, 1)", c.Training.TestFraction)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid, "log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid, "log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
