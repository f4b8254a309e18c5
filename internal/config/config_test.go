package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_WritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultDBName, cfg.DBPath)
	assert.Equal(t, "dashboard", cfg.DefaultView)
	assert.Equal(t, "q", cfg.Keys.Quit)

	_, err = os.Stat(path)
	assert.NoError(t, err, "config file created")
}

func TestLoadOrCreate_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "db_path = \"custom.db\"\ndefault_view = \"calendar\"\n\n[keys]\nquit = \"x\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "calendar", cfg.DefaultView)
	assert.Equal(t, "x", cfg.Keys.Quit)
}

func TestLoadOrCreate_FillsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = \"\"\n"), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultDBName, cfg.DBPath)
	assert.Equal(t, "dashboard", cfg.DefaultView)
}
