package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_url":              "https://mycompany.odoo.com",
		"database":                "mycompany",
		"username":                "user@example.com",
		"employee_id":             910,
		"status_refresh_interval": "10s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "https://mycompany.odoo.com", cfg.ServerURL)
		assert.Equal(t, "mycompany", cfg.Database)
		assert.Equal(t, "user@example.com", cfg.Username)
		assert.Equal(t, int64(910), cfg.EmployeeID)
		assert.Equal(t, 10*time.Second, cfg.StatusRefreshInterval)
	})

	t.Run("empty JSON fields keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"database": "other",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{ServerURL: "http://kept:8069", Database: "replaced"}
		parseJson(cfg)

		assert.Equal(t, "http://kept:8069", cfg.ServerURL)
		assert.Equal(t, "other", cfg.Database)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ServerURL:             "defaults:1234",
			StatusRefreshInterval: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.StatusRefreshInterval)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
