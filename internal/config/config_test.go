package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"catalog": "fixtures/postings.csv",
		"model_dir": "fixtures/models",
		"top_n": 10,
		"clusters": 3,
		"port": 9090,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fixtures/postings.csv", cfg.Catalog)
	assert.Equal(t, "fixtures/models", cfg.ModelDir)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 3, cfg.Clusters)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero config", cfg: Config{}},
		{name: "valid", cfg: Config{TopN: 5, Clusters: 5, Port: 8080}},
		{name: "negative top_n", cfg: Config{TopN: -1}, wantErr: true},
		{name: "negative clusters", cfg: Config{Clusters: -1}, wantErr: true},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultCatalog, cfg.Catalog)
	assert.Equal(t, DefaultModelDir, cfg.ModelDir)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Catalog: "my.csv", ModelDir: "models", Port: 9000, DatabaseURL: "postgres://explicit"}
	cfg.ApplyDefaults()

	assert.Equal(t, "my.csv", cfg.Catalog)
	assert.Equal(t, "models", cfg.ModelDir)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://explicit", cfg.DatabaseURL)
}

func TestApplyDefaultsReadsDatabaseURLFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://from-env")

	cfg := &Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, "postgres://from-env", cfg.DatabaseURL)
}
