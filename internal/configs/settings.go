package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "passkeep"

// ConfigPath returns the default location of the configuration file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(configDir, appName, "config.toml"), nil
}

// DataPath returns the directory holding passkeep's own state, such as the
// audit log. It honours XDG_DATA_HOME.
func DataPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, appName), nil
}
