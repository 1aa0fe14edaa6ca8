package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Rounds:    3,
			Seed:      7,
			TraceMode: "off",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
simulation:
  rounds: 5
  seed: 1234
  trace_mode: events
logging:
  level: debug
  format: console
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Simulation.Rounds)
	assert.Equal(t, uint64(1234), cfg.Simulation.Seed)
	assert.Equal(t, "events", cfg.Simulation.TraceMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Simulation.Rounds)
	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, "off", cfg.Simulation.TraceMode)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte("simulation:\n  rounds: 3\n"), 0o644)
	require.NoError(t, err)

	t.Setenv("KOBAYASHI_SIMULATION_ROUNDS", "9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Simulation.Rounds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidateRejectsNonPositiveRounds(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Rounds = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.rounds must be >= 1")
}

func TestValidateRejectsUnknownTraceMode(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.TraceMode = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trace_mode")
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

// TestValidateRounds_Property verifies the rounds invariant over a range of
// values: every positive count is accepted, everything else rejected.
func TestValidateRounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Simulation.Rounds = rapid.IntRange(-100, 100).Draw(rt, "rounds")
		err := cfg.Validate()
		if cfg.Simulation.Rounds >= 1 {
			assert.NoError(rt, err)
		} else {
			assert.Error(rt, err)
		}
	})
}
