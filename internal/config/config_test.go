package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/surface"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: https://surfaces.example.com/api
mode: legacy
timeout: 30s
view:
  surface_type: enneper
  order: 3
preview:
  port: 9000
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://surfaces.example.com/api", cfg.Endpoint)
	assert.Equal(t, controller.ModeLegacy, cfg.ControllerMode())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, surface.ViewState{SurfaceType: surface.Enneper, Resolution: 50, Order: 3, Colormap: "Viridis"}, cfg.View)
	assert.Equal(t, "localhost:9000", cfg.Preview.Addr())
	assert.Equal(t, ".", cfg.Render.OutputDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("view: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.View.Colormap = surface.Monochrome

	require.NoError(t, Save(cfg, path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvEndpoint: "http://10.0.0.5:8000",
		EnvMode:     "legacy",
		EnvTimeout:  "2m",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg, lookup))
	assert.Equal(t, "http://10.0.0.5:8000", cfg.Endpoint)
	assert.Equal(t, "legacy", cfg.Mode)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)

	env[EnvTimeout] = "soon"
	assert.Error(t, ApplyEnv(cfg, lookup))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SURFACEVIEW_TEST_ENDPOINT=http://from-dotenv:5000\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SURFACEVIEW_TEST_ENDPOINT") })

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "http://from-dotenv:5000", os.Getenv("SURFACEVIEW_TEST_ENDPOINT"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://host" }, false},
		{"relative endpoint", func(c *Config) { c.Endpoint = "/api" }, false},
		{"unknown mode", func(c *Config) { c.Mode = "both" }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, false},
		{"zero resolution", func(c *Config) { c.View.Resolution = 0 }, false},
		{"port out of range", func(c *Config) { c.Preview.Port = 70000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
