package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "rsdisco", configBaseName)
	assert.Equal(t, "rsdisco.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", parallelFlagName)
	assert.Equal(t, "discovery.parallel", parallelConfigKey)
	assert.Equal(t, "discovery.strategy", strategyConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "output.format", formatConfigKey)
	assert.Equal(t, "output.export", exportConfigKey)
	assert.Equal(t, ".rsdisco.log", defaultLogFilename)
	assert.Equal(t, "RSDISCO", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is ignored", func(t *testing.T) {
		require.NoError(t, loadDotenv(filepath.Join(dir, "absent.env")))
	})

	t.Run("exports entries without overriding the environment", func(t *testing.T) {
		t.Setenv("RSDISCO_DOTENV_KEPT", "from-env")
		t.Cleanup(func() { _ = os.Unsetenv("RSDISCO_DOTENV_ADDED") })

		path := filepath.Join(dir, "ok.env")
		require.NoError(t, os.WriteFile(path, []byte("RSDISCO_DOTENV_ADDED=1\nRSDISCO_DOTENV_KEPT=from-file\n"), 0o600))

		require.NoError(t, loadDotenv(path))
		assert.Equal(t, "1", os.Getenv("RSDISCO_DOTENV_ADDED"))
		assert.Equal(t, "from-env", os.Getenv("RSDISCO_DOTENV_KEPT"))
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		path := filepath.Join(dir, "bad.env")
		require.NoError(t, os.WriteFile(path, []byte("BAD@KEY=1\n"), 0o600))

		require.Error(t, loadDotenv(path))
	})
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"nonsense", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logPath := filepath.Join(t.TempDir(), "rsdisco.log")

	configureLogger(logPath, true)
	slog.Debug("hello from test", "key", "value")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "hello from test")
	assert.Contains(t, string(contents), "key=value")
}
