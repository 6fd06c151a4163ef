// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName             string `yaml:"cli_name"`
	DisplayName         string `yaml:"display_name"`
	Description         string `yaml:"description"`
	HomeDir             string `yaml:"home_dir"`
	EnvPrefix           string `yaml:"env_prefix"`
	GoModule            string `yaml:"go_module"`
	GitHubRepo          string `yaml:"github_repo"`
	Toolchain           string `yaml:"toolchain"`
	ToolchainInstallURL string `yaml:"toolchain_install_url"`
	ToolchainWindowsURL string `yaml:"toolchain_windows_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:             "create-empirica-app",
			DisplayName:         "Empirica",
			Description:         "Create Empirica apps with no build configuration",
			HomeDir:             ".create-empirica-app",
			EnvPrefix:           "CREATE_EMPIRICA_APP",
			GoModule:            "github.com/empiricaly/create-empirica-app",
			GitHubRepo:          "empiricaly/create-empirica-app",
			Toolchain:           "meteor",
			ToolchainInstallURL: "https://install.meteor.com/",
			ToolchainWindowsURL: "https://install.meteor.com/windows",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-empirica-app").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Empirica").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// Toolchain returns the binary name of the required runtime (e.g., "meteor").
func Toolchain() string { load(); return defaults.Toolchain }

// ToolchainInstallURL returns the URL of the POSIX install script.
func ToolchainInstallURL() string { load(); return defaults.ToolchainInstallURL }

// ToolchainWindowsURL returns the download page shown to Windows users.
func ToolchainWindowsURL() string { load(); return defaults.ToolchainWindowsURL }

// EnvVar returns a fully qualified env var name,
// e.g., EnvVar("template") → "CREATE_EMPIRICA_APP_TEMPLATE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
