package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration shared by both binaries
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" validate:"oneof=text json"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`

	// Extraction tool settings
	Pipe PipeConfig `mapstructure:"pipe"`
}

// DefaultsConfig holds default values for simulator commands
type DefaultsConfig struct {
	Simulator   string `mapstructure:"simulator"`
	DeviceClass string `mapstructure:"device_class" validate:"omitempty,oneof=any iphone ipad watch tv"`
	BundleID    string `mapstructure:"bundle_id"`

	// Log command defaults
	Since string `mapstructure:"since"`
	Limit int    `mapstructure:"limit" validate:"gte=0"`
}

// PipeConfig holds defaults for the extraction CLI
type PipeConfig struct {
	Format          string   `mapstructure:"format" validate:"omitempty,oneof=md text json"`
	IncludePatterns []string `mapstructure:"include_patterns"`
	MaxFileBytes    int64    `mapstructure:"max_file_bytes" validate:"gte=0"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Simulator:   "booted",
			DeviceClass: "any",
			Since:       "5m",
			Limit:       1000,
		},
		Pipe: PipeConfig{
			Format:       "md",
			MaxFileBytes: 2 << 20,
		},
	}
}

// Load loads configuration from files and environment.
// Config file search order (highest precedence first):
// 1. ./.ios-sim.yaml or ./.ios-sim.yml
// 2. ~/.ios-sim.yaml or ~/.ios-sim.yml
// 3. $XDG_CONFIG_HOME/ios-sim/config.yaml (or ~/.config/ios-sim/config.yaml)
// 4. /etc/ios-sim/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks config values against their constraints
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid config value for %s: %v", e.Namespace(), e.Value())
		}
		return err
	}
	return nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".ios-sim.yaml", ".ios-sim.yml", "ios-sim.yaml", "ios-sim.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "ios-sim"))
	}
	searchPaths = append(searchPaths, "/etc/ios-sim")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IOSSIM_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("IOSSIM_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("IOSSIM_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("IOSSIM_SIMULATOR"); v != "" {
		cfg.Defaults.Simulator = v
	}
	if v := os.Getenv("IOSSIM_BUNDLE_ID"); v != "" {
		cfg.Defaults.BundleID = v
	}
	if v := os.Getenv("IOSSIM_PIPE_FORMAT"); v != "" {
		cfg.Pipe.Format = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
