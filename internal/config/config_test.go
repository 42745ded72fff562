package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lpf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
terms: data/aat/aat_terms.json
postgis:
  host: db.example.org
  user: gazetteer
  password: secret
  dbname: lpf
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/aat/aat_terms.json", cfg.Terms)
	assert.Equal(t, "db.example.org", cfg.PostGIS.Host)
	assert.Equal(t, 5432, cfg.PostGIS.Port) // default preserved
	assert.Equal(t, "gazetteer", cfg.PostGIS.User)
	assert.Equal(t, "lpf", cfg.PostGIS.Database)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
