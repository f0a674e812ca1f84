// Package config provides configuration loading, defaults, and validation for
// molscreen.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8087
	DefaultServerMode = "release"

	DefaultModelPath = "models/solubility_rf.json"

	// Random Forest hyperparameters.  The seed is fixed so that two training
	// runs on the same dataset produce byte-identical model artifacts.
	DefaultTrees           = 100
	DefaultMaxDepth        = 10
	DefaultMinSamplesSplit = 2
	DefaultTestFraction    = 0.2
	DefaultSeed            = uint64(2023)

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the application
// default.  Fields that have already been set by the caller (non-zero values)
// are left unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	// ── Model ─────────────────────────────────────────────────────────────────
	if cfg.Model.Path == "" {
		cfg.Model.Path = DefaultModelPath
	}

	// ── Training ──────────────────────────────────────────────────────────────
	if cfg.Training.Trees == 0 {
		cfg.Training.Trees = DefaultTrees
	}
	if cfg.Training.MaxDepth == 0 {
		cfg.Training.MaxDepth = DefaultMaxDepth
	}
	if cfg.Training.MinSamplesSplit == 0 {
		cfg.Training.MinSamplesSplit = DefaultMinSamplesSplit
	}
	if cfg.Training.TestFraction == 0 {
		cfg.Training.TestFraction = DefaultTestFraction
	}
	if cfg.Training.Seed == 0 {
		cfg.Training.Seed = DefaultSeed
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
