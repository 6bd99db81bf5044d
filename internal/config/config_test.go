package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 39.8283, cfg.Map.Center.Lat)
	assert.Equal(t, -98.5795, cfg.Map.Center.Lng)
	assert.Equal(t, 4, cfg.Map.Zoom)
	assert.Equal(t, 50.0, cfg.Cluster.RadiusPx)
	assert.Equal(t, 18, cfg.Cluster.MaxZoom)
	assert.Equal(t, 50, cfg.Fit.PaddingPx)
	assert.Equal(t, 8, cfg.Fit.MaxZoom)
	assert.Equal(t, 300*time.Millisecond, cfg.RetryDelay())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
map:
  center: {lat: 59.3293, lng: 18.0686}
  zoom: 6
cluster:
  radius_px: 80
guard:
  retry_ms: 150
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 59.3293, cfg.Map.Center.Lat)
	assert.Equal(t, 6, cfg.Map.Zoom)
	assert.Equal(t, 80.0, cfg.Cluster.RadiusPx)
	assert.Equal(t, 150*time.Millisecond, cfg.RetryDelay())

	// Untouched sections keep their defaults.
	assert.Equal(t, 50, cfg.Fit.PaddingPx)
	assert.Equal(t, 18, cfg.Cluster.MaxZoom)
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"latitude":  "map:\n  center: {lat: 91, lng: 0}\n",
		"longitude": "map:\n  center: {lat: 0, lng: 200}\n",
		"radius":    "cluster:\n  radius_px: 0\n",
		"retry":     "guard:\n  retry_ms: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema violation")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "map: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestFitOptions_NeverAnimate(t *testing.T) {
	opts := Default().FitOptions()
	assert.Equal(t, 50, opts.PaddingPx)
	assert.Equal(t, 8, opts.MaxZoom)
	assert.False(t, opts.Animate)
}

func TestReadEnv(t *testing.T) {
	t.Setenv("LOCMAP_CATALOG", "/tmp/sites.db")
	t.Setenv("LOCMAP_LOG_LEVEL", "debug")

	e, err := ReadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sites.db", e.CatalogPath)
	assert.Equal(t, "debug", e.LogLevel)
}

func TestReadEnv_Defaults(t *testing.T) {
	t.Setenv("LOCMAP_CATALOG", "")
	t.Setenv("LOCMAP_LOG_LEVEL", "")

	e, err := ReadEnv()
	require.NoError(t, err)
	assert.Equal(t, "locmap.db", e.CatalogPath)
	assert.Equal(t, "info", e.LogLevel)
}
