package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("data", "phase3_lookup.json"), cfg.MasterPath())
	assert.Equal(t, filepath.Join("data", "strategies"), cfg.StrategiesPath())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "word32.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/word32\nmaster_file: master.json\ncatalog_workers: 2\n"), 0o600))
	t.Setenv("WORD32_MASTER_FILE", "/abs/lookup.json")
	t.Setenv("WORD32_CATALOG_WORKERS", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/word32", cfg.DataDir)
	assert.Equal(t, "/abs/lookup.json", cfg.MasterPath())
	assert.Equal(t, 8, cfg.CatalogWorkers)
	assert.Equal(t, "ATONE", cfg.DefaultFirstGuess)
	assert.Equal(t, filepath.Join("/srv/word32", "phase2_naive_32.json"), cfg.RankingPath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.CatalogWorkers = 0
	cfg.DefaultFirstGuess = "TOOLONG"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog_workers")
	assert.Contains(t, err.Error(), "default_first_guess")

	cfg = Default()
	cfg.MasterFile = ""
	assert.ErrorContains(t, cfg.Validate(), "master_file")
}
