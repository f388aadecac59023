package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ExampleFile(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, 5*time.Minute, c.Redis.TTL)
	assert.Equal(t, 30*time.Second, c.TWC.Timeout)
	assert.Equal(t, "IA-", c.TWC.POPrefix)
	assert.Equal(t, "selling", c.Pricing.InventoryMode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("twc:\n  api_key: from-file\npricing:\n  markup_percent: 10\n"), 0o600))

	t.Setenv("APP_TWC_API_KEY", "from-env")
	t.Setenv("APP_PRICING_MARKUP_PERCENT", "25")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.TWC.APIKey)
	assert.Equal(t, 25.0, c.Pricing.MarkupPercent)

	// дефолты
	assert.Equal(t, "prod", c.App.Env)
	assert.True(t, c.Metrics.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad inventory mode", "pricing:\n  inventory_mode: wholesale\n"},
		{"negative markup", "pricing:\n  markup_percent: -5\n"},
		{"redis without ttl", "redis:\n  addr: localhost:6379\n  ttl: 0s\n"},
		{"zero partner timeout", "twc:\n  timeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
