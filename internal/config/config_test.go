package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.List.DefaultPageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.List.Debounce())
	assert.True(t, cfg.List.ResetPageOnFilterChange)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
database:
  path: /tmp/test.db
list:
  default_page_size: 25
  reset_page_on_filter_change: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("INVOICEDESK_LIST_DEBOUNCE_MS", "50")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.List.DefaultPageSize)
	assert.False(t, cfg.List.ResetPageOnFilterChange)
	assert.Equal(t, 50*time.Millisecond, cfg.List.Debounce())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("list:\n  default_page_size: 20\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "default_page_size")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "negative debounce", mutate: func(c *Config) { c.List.DebounceMS = -1 }},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "unknown format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "no database", mutate: func(c *Config) { c.Database.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "db.sqlite")
	cfg.List.DefaultPageSize = 50
	cfg.Export.OutputDir = filepath.Join(dir, "pdf")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "db.sqlite")
	cfg.Export.OutputDir = filepath.Join(dir, "pdf")
	cfg.Logging.Path = filepath.Join(dir, "logs", "app.log")

	require.NoError(t, cfg.EnsureDirectories())
	for _, d := range []string{"data", "pdf", "logs"} {
		assert.DirExists(t, filepath.Join(dir, d))
	}
}
