package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/Rshep3087/finpal/config"
)

// getConfigFilePaths returns the list of possible configuration file paths
// in order of precedence (first found wins).
func getConfigFilePaths() []string {
	var paths []string

	// Current directory (highest precedence)
	paths = append(paths, appName+".toml")

	// User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, appName, "config.toml"))
	}

	// User home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, "."+appName+".toml"))
		paths = append(paths, filepath.Join(homeDir, ".config", appName, "config.toml"))
	}

	// System-wide config directory (lowest precedence)
	paths = append(paths, filepath.Join("/etc", appName, "config.toml"))

	return paths
}

// defaultConfigPath is where config init writes when no path is given.
func defaultConfigPath() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, appName, "config.toml")
	}
	return appName + ".toml"
}

// findConfigFile returns the first existing file of paths, or "" if none exist.
func findConfigFile(fsys afero.Fs, paths []string) string {
	for _, path := range paths {
		if ok, err := afero.Exists(fsys, path); err == nil && ok {
			return path
		}
	}
	return ""
}

// loadConfigFromFile loads configuration from a TOML file.
func loadConfigFromFile(fsys afero.Fs, path string) (config.Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var c config.Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return config.Config{}, fmt.Errorf("failed to parse TOML config file %s: %w", path, err)
	}

	return c, nil
}

// writeConfigFile encodes c as TOML at path, creating parent directories.
// An existing file is only replaced when force is set.
func writeConfigFile(fsys afero.Fs, path string, c config.Config, force bool) error {
	if !force {
		if ok, _ := afero.Exists(fsys, path); ok {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may hold an API key.
	if err := afero.WriteFile(fsys, path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
