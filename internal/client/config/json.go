package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/odooclock/internal/flagx"
	"github.com/dmitrijs2005/odooclock/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "60s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL             string         `json:"server_url"`
	Database              string         `json:"database"`
	Username              string         `json:"username"`
	EmployeeID            int64          `json:"employee_id"`
	VaultPath             string         `json:"vault_path"`
	StatusRefreshInterval timex.Duration `json:"status_refresh_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; empty JSON fields keep
//     the earlier value.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.Database != "" {
		cfg.Database = jc.Database
	}
	if jc.Username != "" {
		cfg.Username = jc.Username
	}
	if jc.EmployeeID != 0 {
		cfg.EmployeeID = jc.EmployeeID
	}
	if jc.VaultPath != "" {
		cfg.VaultPath = jc.VaultPath
	}
	if jc.StatusRefreshInterval.Duration != 0 {
		cfg.StatusRefreshInterval = time.Duration(jc.StatusRefreshInterval.Duration)
	}
}
