package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}

	SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "starlane-supply.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1.0, cfg.Supply.JumpLength)
	assert.GreaterOrEqual(t, cfg.Supply.Parallelism, 1)
	assert.Equal(t, 2*time.Second, cfg.Watch.MinInterval)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  type: sqlite
  path: ":memory:"
logging:
  level: debug
supply:
  jump_length: 2.5
  parallelism: 3
`), 0o644))
	t.Setenv("SUPPLY_SUPPLY_PARALLELISM", "7")
	t.Setenv("SUPPLY_WATCH_PID_FILE", filepath.Join(dir, "watch.pid"))

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2.5, cfg.Supply.JumpLength)
	assert.Equal(t, 7, cfg.Supply.Parallelism)
	assert.Equal(t, filepath.Join(dir, "watch.pid"), cfg.Watch.PIDFile)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidateConfig_NegativeJumpLength(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Supply.JumpLength = -1

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "supply.jump_length")
}

func TestValidateConfig_DebounceLongerThanMinInterval(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Watch.MinInterval = time.Second
	cfg.Watch.Debounce = 3 * time.Second

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch.debounce")
}

func TestValidateConfig_DebounceEqualToMinInterval(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Watch.MinInterval = time.Second
	cfg.Watch.Debounce = time.Second

	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig_MetricsPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "default", path: "/metrics"},
		{name: "nested", path: "/internal/metrics"},
		{name: "relative", path: "metrics", wantErr: true},
		{name: "query", path: "/metrics?x=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			SetDefaults(cfg)
			cfg.Metrics.Path = tt.path

			err := ValidateConfig(cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "metrics.path")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [\n"), 0o644))

	cfg := LoadConfigOrDefault(path)

	assert.Equal(t, "info", cfg.Logging.Level)
}
