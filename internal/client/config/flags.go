package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/odooclock/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-d string   database name (default from Config)
//	-u string   login name (default from Config)
//	-e int      employee id for attendance commands (default from Config)
//	-v string   path of the local vault database file (default from Config)
//	-i int      status refresh interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-u", "-e", "-v", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the backend server")
	fs.StringVar(&cfg.Database, "d", cfg.Database, "database name")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "login name")
	fs.Int64Var(&cfg.EmployeeID, "e", cfg.EmployeeID, "employee id for attendance commands")
	fs.StringVar(&cfg.VaultPath, "v", cfg.VaultPath, "path of the local vault database file")
	statusRefreshInterval := fs.Int("i", int(cfg.StatusRefreshInterval.Seconds()), "status refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StatusRefreshInterval = time.Duration(*statusRefreshInterval) * time.Second
}
