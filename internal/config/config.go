// Package config provides user configuration for the konductor CLI, backed
// by a Viper instance reading ~/.konductor/config.yaml and KONDUCTOR_*
// environment variables. Flags override config values, config overrides the
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	homeDirName = ".konductor"
	fileName    = "config"
	fileType    = "yaml"
	envPrefix   = "KONDUCTOR"

	// KeyProvider selects the default code generation provider.
	KeyProvider = "provider"
	// KeyOutputDir selects the default output directory.
	KeyOutputDir = "output_dir"

	DefaultProvider  = "google_adk"
	DefaultOutputDir = "generated_agent"
)

// Dir returns the path to the konductor config directory (~/.konductor/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDirName)
	}
	return filepath.Join(home, homeDirName)
}

// FilePath returns the full path to the config file (~/.konductor/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetDefault(KeyProvider, DefaultProvider)
	viper.SetDefault(KeyOutputDir, DefaultOutputDir)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
