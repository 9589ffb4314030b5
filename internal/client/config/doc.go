// Package config loads runtime configuration for the odooclock CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (see parseEnv), optionally seeded from a .env file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-d string   database name
//	-u string   login name
//	-e int      employee id for attendance commands
//	-v string   path of the local vault database file
//	-i int      status refresh interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://mycompany.odoo.com",
//	  "database": "mycompany",
//	  "username": "user@example.com",
//	  "employee_id": 910,
//	  "vault_path": "odooclock.db",
//	  "status_refresh_interval": "60s"
//	}
//
// Primary API
//
//   - type Config                     — holds connection and refresh settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: passwords are never configured here; they are entered at the login
// prompt and kept in the local vault.
package config
