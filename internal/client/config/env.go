package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory, when present, seeds variables that are not
// already set; real environment variables win over the file.
//
// Recognized variables:
//
//	ODOO_URL                  base URL of the backend server
//	ODOO_DB                   database name
//	ODOO_USERNAME             login name
//	ODOO_EMPLOYEE_ID          employee id for attendance commands
//	VAULT_PATH                path of the local vault database file
//	STATUS_REFRESH_INTERVAL   refresh interval in seconds
//
// Malformed numeric values are ignored rather than failing startup.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ODOO_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("ODOO_DB"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("ODOO_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("ODOO_EMPLOYEE_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.EmployeeID = id
		}
	}
	if v := os.Getenv("VAULT_PATH"); v != "" {
		cfg.VaultPath = v
	}
	if v := os.Getenv("STATUS_REFRESH_INTERVAL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.StatusRefreshInterval = time.Duration(secs) * time.Second
		}
	}
}
