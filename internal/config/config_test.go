package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/sufield/trustset/internal/core/errors"
)

func TestLoadDefaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	v.Set("store_path", "settings.yaml")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "settings.yaml", cfg.StorePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRequiresStorePath(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)

	_, err = Load(v)
	require.Error(t, err)

	var verr *coreerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "StorePath", verr.Field)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	v.Set("store_path", "settings.yaml")
	v.Set("log_level", "loud")

	_, err = Load(v)
	require.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TRUSTSET_STORE_PATH", "/etc/trustset/settings.yaml")
	t.Setenv("TRUSTSET_LOG_LEVEL", "debug")

	v, err := NewViper("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/etc/trustset/settings.yaml", cfg.StorePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_path: from-file.yaml\nlog_level: warn\n"), 0o600))

	v, err := NewViper(path)
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from-file.yaml", cfg.StorePath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestSlogLevel(t *testing.T) {
	levels := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for name, want := range levels {
		cfg := &Config{LogLevel: name}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", name)
	}
}
