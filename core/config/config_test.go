package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.Metrics)
	assert.Equal(t, "", cfg.Loader.Path)
	assert.False(t, cfg.Loader.Watch)
	assert.Equal(t, "components", cfg.Repository.Bucket)
	assert.Equal(t, ".components", cfg.Repository.CacheDir)
	assert.Equal(t, 30, cfg.Repository.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LOADER_PATH", "/opt/components;/usr/lib/components")
	t.Setenv("LOADER_TARGET", "gnulinux")
	t.Setenv("LOADER_WATCH", "true")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/opt/components;/usr/lib/components", cfg.Loader.Path)
	assert.Equal(t, "gnulinux", cfg.Loader.Target)
	assert.True(t, cfg.Loader.Watch)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REPOSITORY_BUCKET=plugins\nDATABASE_DRIVER=mysql\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("REPOSITORY_BUCKET")
		os.Unsetenv("DATABASE_DRIVER")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "plugins", cfg.Repository.Bucket)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}
