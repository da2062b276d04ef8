package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`environments:
  - name: Sandbox
    url: https://sandbox.example.test
  - name: Production
    url: https://prod.example.test
    token_env: PERFGATE_PROD_TOKEN
selected: Sandbox
`), 0o644))

	cfg, err := LoadEnvironmentsFromFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Environments, 2)
	assert.Equal(t, "Sandbox", cfg.Environments[0].Name)
	assert.Equal(t, "https://sandbox.example.test", cfg.Environments[0].URL)
	assert.Empty(t, cfg.Environments[0].TokenEnv)
	assert.Equal(t, "PERFGATE_PROD_TOKEN", cfg.Environments[1].TokenEnv)
	assert.Equal(t, "Sandbox", cfg.Selected)
}

func TestLoadEnvironmentsMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadEnvironmentsFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Len(t, cfg.Environments, 2)
	assert.Equal(t, "Sandbox", cfg.Environments[0].Name)
	assert.Equal(t, "Staging", cfg.Environments[1].Name)
}

func TestLoadEnvironmentsRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environments: [not: closed"), 0o644))

	_, err := LoadEnvironmentsFromFile(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}
