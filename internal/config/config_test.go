package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(path string, environ ...string) *configService {
	return &configService{
		filePath: path,
		environ:  func() []string { return environ },
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := newTestService(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := newTestService(path)

	cfg := DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9000"
	cfg.Storage.Driver = "bolt"
	cfg.Client.Timeout = Duration(1500 * time.Millisecond)

	require.NoError(t, cs.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1.5s")

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndriver = 'sqlite'\n"), 0644))

	cfg, err := newTestService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "selected-companies.json", cfg.Storage.SelectionFile)
	assert.Equal(t, "localhost:5000", cfg.Server.Addr)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = 'localhost:7000'\n"), 0644))

	cs := newTestService(path,
		"COMPANYPICKER_SERVER_ADDR=0.0.0.0:8080",
		"COMPANYPICKER_CLIENT_LOGO_TIMEOUT=250ms",
		"COMPANYPICKER_LOG_LEVEL=debug",
	)

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.LogoTimeout.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInvalidFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\naddr ="), 0644))

	_, err := newTestService(path).Load()
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestInvalidDurationIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[client]\ntimeout = 'soon'\n"), 0644))

	_, err := newTestService(path).Load()
	assert.Error(t, err)
}
