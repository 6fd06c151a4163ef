package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/empiricaly/create-empirica-app/internal/branding"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyTemplate            = "template"
	KeyPackageManager      = "package_manager"
	KeyToolchainInstallURL = "toolchain.install_url"
	KeyToolchainMinVersion = "toolchain.min_version"
	KeyProbeHost           = "network.probe_host"
	KeyProbeTimeout        = "network.timeout"
)

// Defaults applied before the config file and environment are read.
var Defaults = map[string]string{
	KeyTemplate:            "basic",
	KeyPackageManager:      "meteor",
	KeyToolchainInstallURL: branding.ToolchainInstallURL(),
	KeyToolchainMinVersion: "1.8.0",
	KeyProbeHost:           "registry.yarnpkg.com",
	KeyProbeTimeout:        "5s",
}

// Dir returns the path to the config directory (~/.create-empirica-app/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
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
// A .env file in the working directory is loaded into the process
// environment first; variables already set win.
func Load() {
	_ = godotenv.Load()

	for k, v := range Defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetDuration returns a duration setting, falling back to fallback when the
// value is unset or unparsable.
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
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
