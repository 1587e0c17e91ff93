package config

import (
	"os"
	"path/filepath"
)

// DBPath returns the record database path from the REFIELD_DB env var,
// falling back to the XDG data directory.
func DBPath() string {
	if env := os.Getenv("REFIELD_DB"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "refield", "records.db")
}
