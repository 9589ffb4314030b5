package config

import "time"

// Config holds runtime settings for the odooclock CLI.
//
// Fields:
//   - ServerURL: base URL of the backend server, e.g. https://mycompany.odoo.com.
//   - Database: database name to authenticate against.
//   - Username: login to suggest at the login prompt.
//   - EmployeeID: employee record the attendance commands act on.
//   - VaultPath: path of the local vault database file.
//   - StatusRefreshInterval: how often the background watcher refreshes status.
//
// Units: StatusRefreshInterval is a time.Duration (e.g., 60*time.Second).
type Config struct {
	ServerURL             string
	Database              string
	Username              string
	EmployeeID            int64
	VaultPath             string
	StatusRefreshInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8069"
	c.Database = "odoo"
	c.VaultPath = "odooclock.db"
	c.StatusRefreshInterval = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (optionally seeded from a .env file), a JSON file (if
// present) and command-line flags (if present). Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
