package toolchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	goruntime "runtime"

	"github.com/empiricaly/create-empirica-app/internal/branding"
	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/runtime"
)

// Status describes the toolchain after Ensure.
type Status struct {
	Path      string
	Version   string
	Installed bool // installed during this run
	Warnings  []string
}

// Installer detects and, if needed, installs the toolchain.
type Installer struct {
	runner     runtime.Runner
	httpClient *http.Client
	installURL string
	windowsURL string
	minVersion string
	lookPath   func(string) (string, error)
	goos       string
	stdout     io.Writer
	stderr     io.Writer
}

// Option configures an Installer.
type Option func(*Installer)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) {
		i.httpClient = c
	}
}

// WithInstallURL overrides the installer script location.
func WithInstallURL(url string) Option {
	return func(i *Installer) {
		if url != "" {
			i.installURL = url
		}
	}
}

// WithMinVersion sets the semver constraint an installed toolchain should
// satisfy, e.g. ">= 1.8.0". A bare version is read as a minimum.
func WithMinVersion(v string) Option {
	return func(i *Installer) {
		i.minVersion = v
	}
}

// WithLookPath replaces exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(i *Installer) {
		i.lookPath = fn
	}
}

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(i *Installer) {
		i.goos = goos
	}
}

// WithOutput sets where the installer script's output is streamed.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(i *Installer) {
		i.stdout = stdout
		i.stderr = stderr
	}
}

// New creates an Installer that runs commands through runner.
func New(runner runtime.Runner, opts ...Option) *Installer {
	i := &Installer{
		runner:     runner,
		httpClient: http.DefaultClient,
		installURL: branding.ToolchainInstallURL(),
		windowsURL: branding.ToolchainWindowsURL(),
		lookPath:   exec.LookPath,
		goos:       goruntime.GOOS,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ensure returns the toolchain status, installing the toolchain when it is
// not on PATH.
func (i *Installer) Ensure(ctx context.Context) (*Status, error) {
	name := branding.Toolchain()

	if path, err := i.lookPath(name); err == nil {
		status := &Status{Path: path}
		i.checkVersion(ctx, status)
		return status, nil
	}

	if i.goos == "windows" {
		err := scaffolderr.New(scaffolderr.EToolchainInstall,
			fmt.Sprintf("%s is not installed and cannot be installed automatically on Windows", name))
		return nil, scaffolderr.WithHints(err,
			fmt.Sprintf("Please install %s manually: %s", name, i.windowsURL),
			"Then run this command again.")
	}

	if err := i.install(ctx); err != nil {
		return nil, err
	}

	status := &Status{Installed: true}
	path, err := i.lookPath(name)
	if err != nil {
		status.Warnings = append(status.Warnings,
			fmt.Sprintf("%s was installed but is not on PATH yet; open a new shell if later steps cannot find it", name))
		return status, nil
	}
	status.Path = path
	i.checkVersion(ctx, status)
	return status, nil
}

func (i *Installer) install(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "create-empirica-app-toolchain-*")
	if err != nil {
		return scaffolderr.Wrap(scaffolderr.EToolchainInstall, "creating download directory", err)
	}
	defer os.RemoveAll(dir)

	script, err := i.DownloadScript(ctx, dir)
	if err != nil {
		return scaffolderr.Wrap(scaffolderr.EToolchainInstall, "downloading installer", err)
	}

	res, err := i.runner.Run(ctx, "sh", []string{script}, runtime.RunOpts{
		Stdin:       os.Stdin,
		Stdout:      i.stdout,
		Stderr:      i.stderr,
		Passthrough: true,
	})
	if err != nil {
		return scaffolderr.Wrap(scaffolderr.EToolchainInstall, "running installer", err)
	}
	if res.ExitCode != 0 {
		return scaffolderr.WithDetails(scaffolderr.EToolchainInstall,
			fmt.Sprintf("installer exited with status %d", res.ExitCode), nil,
			map[string]string{"installer": i.installURL})
	}
	return nil
}

// checkVersion records a warning when the installed version is unknown or
// does not satisfy the minimum.
func (i *Installer) checkVersion(ctx context.Context, status *Status) {
	if i.runner == nil {
		return
	}
	res, err := i.runner.Run(ctx, branding.Toolchain(), []string{"--version"}, runtime.RunOpts{})
	if err != nil || res.ExitCode != 0 {
		status.Warnings = append(status.Warnings, "could not determine the installed meteor version")
		return
	}

	v, err := ParseVersion(res.Stdout)
	if err != nil {
		status.Warnings = append(status.Warnings, err.Error())
		return
	}
	status.Version = v.String()

	if i.minVersion == "" {
		return
	}
	ok, err := Satisfies(v, i.minVersion)
	if err != nil {
		status.Warnings = append(status.Warnings, fmt.Sprintf("ignoring minimum version %q: %v", i.minVersion, err))
		return
	}
	if !ok {
		status.Warnings = append(status.Warnings,
			fmt.Sprintf("meteor %s is older than the supported minimum %s; run `meteor update` if the app fails to start", v, i.minVersion))
	}
}
