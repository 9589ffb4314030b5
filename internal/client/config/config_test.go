package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8069", c.ServerURL)
	assert.Equal(t, "odoo", c.Database)
	assert.Equal(t, "odooclock.db", c.VaultPath)
	assert.Equal(t, 60*time.Second, c.StatusRefreshInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8069", cfg.ServerURL)
	assert.Equal(t, "odoo", cfg.Database)
	assert.Equal(t, 60*time.Second, cfg.StatusRefreshInterval)
}
