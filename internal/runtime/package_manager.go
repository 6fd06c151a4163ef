package runtime

import (
	"fmt"
	"strings"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
)

// Supported package manager identifiers.
const (
	Meteor = "meteor"
	NPM    = "npm"
	Yarn   = "yarn"
)

// PackageManager describes how dependencies of a generated project are
// installed.
type PackageManager struct {
	Name        string
	Command     string
	InstallArgs []string

	// CaretRanges reports whether exact template versions are widened to
	// caret ranges before installing.
	CaretRanges bool

	// NeedsToolchain reports whether meteor must be on PATH.
	NeedsToolchain bool

	// NetworkSensitive managers are probed for registry reachability and
	// installed offline when it is unreachable.
	NetworkSensitive bool
	OfflineFlag      string

	// NPMFamily managers read npm's configuration, so the cwd diagnostic
	// applies to them.
	NPMFamily bool
}

// Install returns the command and arguments that install dependencies.
func (pm PackageManager) Install(offline bool) (string, []string) {
	args := append([]string(nil), pm.InstallArgs...)
	if offline && pm.OfflineFlag != "" {
		args = append(args, pm.OfflineFlag)
	}
	return pm.Command, args
}

// String renders the install command line.
func (pm PackageManager) String() string {
	cmd, args := pm.Install(false)
	return strings.Join(append([]string{cmd}, args...), " ")
}

var packageManagers = map[string]PackageManager{
	Meteor: {
		Name:           Meteor,
		Command:        "meteor",
		InstallArgs:    []string{"npm", "install"},
		CaretRanges:    true,
		NeedsToolchain: true,
		NPMFamily:      true,
	},
	NPM: {
		Name:        NPM,
		Command:     "npm",
		InstallArgs: []string{"install"},
		CaretRanges: true,
		NPMFamily:   true,
	},
	Yarn: {
		Name:             Yarn,
		Command:          "yarn",
		InstallArgs:      []string{"install"},
		NetworkSensitive: true,
		OfflineFlag:      "--offline",
	},
}

// Dispatch returns the PackageManager for name. Unknown names yield an
// E_USAGE error.
func Dispatch(name string) (PackageManager, error) {
	pm, ok := packageManagers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PackageManager{}, scaffolderr.New(scaffolderr.EUsage,
			fmt.Sprintf("unknown package manager %q: supported are %q, %q and %q", name, Meteor, NPM, Yarn))
	}
	return pm, nil
}
