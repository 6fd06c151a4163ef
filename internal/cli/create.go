package cli

import (
	"fmt"
	"io"

	"github.com/empiricaly/create-empirica-app/internal/branding"
	"github.com/empiricaly/create-empirica-app/internal/config"
	"github.com/empiricaly/create-empirica-app/internal/create"
	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/netcheck"
	"github.com/empiricaly/create-empirica-app/internal/project"
	"github.com/empiricaly/create-empirica-app/internal/runtime"
	"github.com/empiricaly/create-empirica-app/internal/toolchain"
	"github.com/empiricaly/create-empirica-app/internal/ui"
	"github.com/spf13/cobra"
)

func runCreate(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	ui.SetColor(ui.AutoColor(out))
	runner := runtime.NewExecRunner()

	if flagInfo {
		printInfo(cmd.Context(), out, runner, nil)
		return nil
	}

	if len(args) == 0 {
		printUsageHint(errOut)
		return scaffolderr.New(scaffolderr.EUsage, "please specify the project directory")
	}

	config.Load()

	pm, err := resolvePackageManager(flagPackageManager, flagUseNpm, flagUseYarn, config.Get(config.KeyPackageManager))
	if err != nil {
		return err
	}
	tmpl := flagTemplate
	if tmpl == "" {
		tmpl = config.Get(config.KeyTemplate)
	}

	req, err := project.NewRequest(args[0], project.Options{
		Template:       tmpl,
		PackageManager: pm,
		Verbose:        flagVerbose,
	})
	if err != nil {
		return err
	}

	engine := &create.Engine{
		Printer: ui.NewPrinter(out, errOut, req.Verbose),
		Runner:  runner,
		Toolchain: toolchain.New(runner,
			toolchain.WithInstallURL(config.Get(config.KeyToolchainInstallURL)),
			toolchain.WithMinVersion(config.Get(config.KeyToolchainMinVersion)),
			toolchain.WithOutput(out, errOut),
		),
		Prober:    netcheck.NewProber(runner, config.GetDuration(config.KeyProbeTimeout, netcheck.DefaultTimeout)),
		ProbeHost: config.Get(config.KeyProbeHost),
	}

	_, err = engine.Run(cmd.Context(), req)
	return err
}

// resolvePackageManager picks the package manager from the flags, falling
// back to the configured default.
func resolvePackageManager(explicit string, useNpm, useYarn bool, configured string) (string, error) {
	var name string
	switch {
	case explicit != "":
		name = explicit
	case useNpm:
		name = runtime.NPM
	case useYarn:
		name = runtime.Yarn
	case configured != "":
		name = configured
	default:
		name = runtime.Meteor
	}
	pm, err := runtime.Dispatch(name)
	if err != nil {
		return "", err
	}
	return pm.Name, nil
}

func printUsageHint(w io.Writer) {
	name := branding.CLIName()
	fmt.Fprintln(w, "Please specify the project directory:")
	fmt.Fprintf(w, "  %s %s\n", ui.Cyan(name), ui.Green("<project-directory>"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For example:")
	fmt.Fprintf(w, "  %s %s\n", ui.Cyan(name), ui.Green("my-experiment"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run %s to see all options.\n", ui.Cyan(name+" --help"))
}
