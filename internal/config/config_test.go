package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_fileThenEnvironment(t *testing.T) {
	path := writeConfig(t, "localesync.yaml",
		"locales_root: ./i18n\nlanguage: de\nflush_quiet_period: 250ms\nlogging:\n  level: debug\n")
	t.Setenv("LOCALESYNC_LANGUAGE", "fr")
	t.Setenv("LOCALESYNC_FLUSH_CONCURRENCY", "8")
	t.Setenv("LOCALESYNC_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./i18n", cfg.LocalesRoot)
	assert.Equal(t, "fr", cfg.Language, "environment overrides the file")
	assert.Equal(t, 250*time.Millisecond, cfg.FlushQuietPeriod)
	assert.Equal(t, time.Second, cfg.ReloadQuietPeriod, "unset fields keep their default")
	assert.Equal(t, 8, cfg.FlushConcurrency)
	assert.Equal(t, Logging{Level: "debug", Format: "json"}, cfg.Logging)
}

func TestLoad_toml(t *testing.T) {
	path := writeConfig(t, "localesync.toml", `
locales_root = "/srv/locales"
language = "pt-BR"
reload_quiet_period = "2s"
metrics_addr = "localhost:9100"

[logging]
format = "tint"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/locales", cfg.LocalesRoot)
	assert.Equal(t, "pt-BR", cfg.Language)
	assert.Equal(t, 2*time.Second, cfg.ReloadQuietPeriod)
	assert.Equal(t, "localhost:9100", cfg.MetricsAddr)
	assert.Equal(t, "tint", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_exampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "localesync.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "./locales", cfg.LocalesRoot)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		env     map[string]string
	}{
		{"unknown field", "c.yaml", "locales_root: x\nunknown: 1\n", nil},
		{"bad yaml", "c.yaml", "locales_root: [\n", nil},
		{"bad toml", "c.toml", "locales_root = \n", nil},
		{"bad duration", "c.yaml", "", map[string]string{"LOCALESYNC_RELOAD_QUIET_PERIOD": "soon"}},
		{"empty root", "c.yaml", "locales_root: \"\"\n", nil},
		{"zero concurrency", "c.yaml", "flush_concurrency: 0\n", nil},
		{"negative quiet period", "c.yaml", "flush_quiet_period: -1s\n", nil},
		{"unknown log format", "c.yaml", "logging:\n  format: xml\n", nil},
		{"bad metrics address", "c.yaml", "metrics_addr: nowhere\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestFile_SyncConfig(t *testing.T) {
	cfg := Default()
	cfg.LocalesRoot = "/srv/locales"
	cfg.Language = "it"

	got := cfg.SyncConfig(nil, nil)
	assert.Equal(t, "/srv/locales", got.LocalesRoot)
	assert.Equal(t, "it", got.Language)
	assert.Equal(t, cfg.FlushQuietPeriod, got.FlushQuietPeriod)
	assert.Equal(t, cfg.FlushConcurrency, got.FlushConcurrency)
}
