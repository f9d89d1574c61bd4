package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "inventory.csv", cfg.InventoryFile)
	assert.Equal(t, "sales.csv", cfg.SalesFile)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=9090\nINVENTORY_FILE=/data/stock.csv\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/data/stock.csv", cfg.InventoryFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sales.csv", cfg.SalesFile)
}

func TestEnvironmentOverridesEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SALES_FILE=file.csv\n"), 0o644))
	t.Setenv("SALES_FILE", "env.csv")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "env.csv", cfg.SalesFile)
	assert.True(t, cfg.IsProduction())
}
