package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/internship-matcher/internal/config"
)

func resetRunFlags(t *testing.T) {
	t.Helper()
	runCatalog, runModelDir, runConfig = "", "", ""
	runTopN, runClusters = 0, 0
	runVerbose = false
	t.Setenv("DATABASE_URL", "")
}

func TestMergeConfigDefaults(t *testing.T) {
	resetRunFlags(t)

	cfg, err := mergeConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCatalog, cfg.Catalog)
	assert.Equal(t, config.DefaultModelDir, cfg.ModelDir)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestMergeConfigFlagsWinOverFile(t *testing.T) {
	resetRunFlags(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"catalog": "from-file.csv",
		"model_dir": "file-models",
		"top_n": 3
	}`), 0o644))

	runConfig = path
	runCatalog = "from-flag.csv"
	runTopN = 7

	cfg, err := mergeConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.csv", cfg.Catalog)
	assert.Equal(t, "file-models", cfg.ModelDir)
	assert.Equal(t, 7, cfg.TopN)
}

func TestMergeConfigBadFile(t *testing.T) {
	resetRunFlags(t)
	runConfig = filepath.Join(t.TempDir(), "missing.json")

	_, err := mergeConfig()
	assert.Error(t, err)
}
