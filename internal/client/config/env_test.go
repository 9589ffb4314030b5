package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overlays set variables", func(t *testing.T) {
		t.Setenv("ODOO_URL", "https://env.odoo.com")
		t.Setenv("ODOO_DB", "envdb")
		t.Setenv("ODOO_USERNAME", "env@example.com")
		t.Setenv("ODOO_EMPLOYEE_ID", "77")
		t.Setenv("VAULT_PATH", "/tmp/vault.db")
		t.Setenv("STATUS_REFRESH_INTERVAL", "15")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "https://env.odoo.com", cfg.ServerURL)
		assert.Equal(t, "envdb", cfg.Database)
		assert.Equal(t, "env@example.com", cfg.Username)
		assert.Equal(t, int64(77), cfg.EmployeeID)
		assert.Equal(t, "/tmp/vault.db", cfg.VaultPath)
		assert.Equal(t, 15*time.Second, cfg.StatusRefreshInterval)
	})

	t.Run("unset variables keep defaults", func(t *testing.T) {
		t.Setenv("ODOO_URL", "")
		t.Setenv("ODOO_DB", "")
		t.Setenv("ODOO_EMPLOYEE_ID", "")
		t.Setenv("STATUS_REFRESH_INTERVAL", "")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://localhost:8069", cfg.ServerURL)
		assert.Equal(t, "odoo", cfg.Database)
		assert.Equal(t, 60*time.Second, cfg.StatusRefreshInterval)
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		t.Setenv("ODOO_EMPLOYEE_ID", "abc")
		t.Setenv("STATUS_REFRESH_INTERVAL", "soon")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, int64(0), cfg.EmployeeID)
		assert.Equal(t, 60*time.Second, cfg.StatusRefreshInterval)
	})
}
