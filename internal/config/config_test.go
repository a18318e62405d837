package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absim/domain/content"
	"absim/domain/core"
	"absim/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ABSIM_CONFIG", "")
	t.Setenv("SEED", "")
	t.Setenv("NUM_CONSUMERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 1000, cfg.Simulation.NumConsumers)
	assert.Equal(t, 30, cfg.Simulation.NumItems)
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.True(t, cfg.Simulation.Tests.EqualVar)
	assert.True(t, cfg.Simulation.Tests.YatesCorrection)
	assert.Equal(t, 0.05, cfg.Simulation.Tests.Alpha)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ABSIM_CONFIG", "")
	t.Setenv("SEED", "7")
	t.Setenv("NUM_CONSUMERS", "250")
	t.Setenv("TRIAL_WORKERS", "4")
	t.Setenv("EQUAL_VAR", "false")
	t.Setenv("ALPHA", "0.01")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.Equal(t, 250, cfg.Simulation.NumConsumers)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.False(t, cfg.Simulation.Tests.EqualVar)
	assert.Equal(t, 0.01, cfg.Simulation.Tests.Alpha)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_RejectsNonPositiveCounts(t *testing.T) {
	t.Setenv("ABSIM_CONFIG", "")
	t.Setenv("NUM_CONSUMERS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_RejectsAlphaOutOfRange(t *testing.T) {
	t.Setenv("ABSIM_CONFIG", "")
	t.Setenv("ALPHA", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absim.yaml")
	yamlDoc := `
simulation:
  seed: 99
  num_items: 12
  tests:
    yates_correction: false
  population:
    category_weights:
      politics: 0.2
      sport: 0.2
      tech: 0.2
      entertainment: 0.2
      economy: 0.2
server:
  port: "9090"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))
	t.Setenv("SEED", "")
	t.Setenv("NUM_ITEMS", "15")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 15, cfg.Simulation.NumItems, "env wins over file")
	assert.False(t, cfg.Simulation.Tests.YatesCorrection)
	assert.Equal(t, 0.2, cfg.Simulation.Population.CategoryWeights[content.CategorySport])
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 0.05, cfg.Simulation.Tests.Alpha, "unset keys keep defaults")
}

func TestLoadFile_BadWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absim.yaml")
	yamlDoc := `
simulation:
  population:
    category_weights:
      sport: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidWeights)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestSimulationConfig_Hash(t *testing.T) {
	a := DefaultSimulation()
	b := DefaultSimulation()
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEmpty(t, a.Hash())

	b.Tests.EqualVar = false
	assert.NotEqual(t, a.Hash(), b.Hash())

	c := DefaultSimulation()
	c.Seed = 1
	assert.Equal(t, a.Hash(), c.Hash(), "seed is fingerprinted separately")
}
