package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/molscreen/pkg/errors"
)

const validConfigYAML = `
server:
  port: 9090
  mode: "debug"
model:
  path: "models/custom.json"
  watch_reload: true
training:
  trees: 50
  max_depth: 8
  seed: 7
data:
  dataset_path: "testdata/extra.csv"
log:
  level: "debug"
  format: "console"
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		os.Setenv(k, v)
	}
	t.Cleanup(func() {
		for k := range vars {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "models/custom.json", cfg.Model.Path)
	assert.True(t, cfg.Model.WatchReload)
	assert.Equal(t, 50, cfg.Training.Trees)
	assert.Equal(t, 8, cfg.Training.MaxDepth)
	assert.Equal(t, uint64(7), cfg.Training.Seed)
	assert.Equal(t, "testdata/extra.csv", cfg.Data.DatasetPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromFile_DefaultsFillUnsetFields(t *testing.T) {
	path := createTempConfigFile(t, "server:\n  port: 9191\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultModelPath, cfg.Model.Path)
	assert.Equal(t, DefaultTrees, cfg.Training.Trees)
	assert.Equal(t, DefaultMaxDepth, cfg.Training.MaxDepth)
	assert.Equal(t, DefaultMinSamplesSplit, cfg.Training.MinSamplesSplit)
	assert.Equal(t, DefaultTestFraction, cfg.Training.TestFraction)
	assert.Equal(t, DefaultSeed, cfg.Training.Seed)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load("non_existent_config.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigLoadFailed))
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "invalid_yaml: [")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigLoadFailed))
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	path := createTempConfigFile(t, "server:\n  port: 70000\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigInvalid))
}

func TestLoadFromEnv_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultModelPath, cfg.Model.Path)
}

func TestLoadFromEnv_EnvOverrides(t *testing.T) {
	setEnvVars(t, map[string]string{
		"MOLSCREEN_MODEL_PATH": "/opt/models/rf.json",
		"MOLSCREEN_LOG_LEVEL":  "warn",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/opt/models/rf.json", cfg.Model.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestMustLoad_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad("does_not_exist.yaml")
	})
}
