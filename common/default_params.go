package common

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	DefaultRPCListenAddr = "127.0.0.1:48132"
	DefaultLogLevel      = "info"
)

// DefaultDataDir is the platform-specific default root for keystores,
// the account database and log files.
func DefaultDataDir() string {
	home := homeDir()
	if home == "" {
		// fall back to the working directory
		return "gvault"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "GVault")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "GVault")
	default:
		return filepath.Join(home, ".gvault")
	}
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}
