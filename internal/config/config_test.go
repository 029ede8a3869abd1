package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9091", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "postavki.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("http:\n  addr: \":8080\"\ndatabase:\n  driver: postgres\n  dsn: host=db user=postgres\nlog:\n  format: json\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("POSTAVKI_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=db user=postgres", cfg.Database.DSN)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("POSTAVKI_DATABASE_DRIVER", "mysql")
	_, err := Load("")
	require.Error(t, err)
}
