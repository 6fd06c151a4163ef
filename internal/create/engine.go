package create

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/guard"
	"github.com/empiricaly/create-empirica-app/internal/manifest"
	"github.com/empiricaly/create-empirica-app/internal/project"
	"github.com/empiricaly/create-empirica-app/internal/runtime"
	"github.com/empiricaly/create-empirica-app/internal/scaffold"
	"github.com/empiricaly/create-empirica-app/internal/toolchain"
	"github.com/empiricaly/create-empirica-app/internal/ui"
)

// Toolchain makes the meteor toolchain available.
type Toolchain interface {
	Ensure(ctx context.Context) (*toolchain.Status, error)
}

// Prober reports whether a registry host can be reached.
type Prober interface {
	IsReachable(ctx context.Context, host string) bool
}

// Engine holds the collaborators of a run. All fields except Printer and
// Runner are optional.
type Engine struct {
	Printer   *ui.Printer
	Runner    runtime.Runner
	Toolchain Toolchain
	Prober    Prober
	ProbeHost string
	Rules     scaffold.Rules
	Stdin     io.Reader
	Now       func() time.Time
}

// Run scaffolds req.Root from req.Template and installs its dependencies.
func (e *Engine) Run(ctx context.Context, req project.Request) (*Outcome, error) {
	out := &Outcome{}
	p := e.Printer

	pm, err := runtime.Dispatch(req.PackageManager)
	if err != nil {
		return out.fail(err)
	}

	// preflight-toolchain
	out.enter(StatePreflightToolchain)
	if pm.NeedsToolchain && e.Toolchain != nil {
		status, err := e.Toolchain.Ensure(ctx)
		if err != nil {
			return out.fail(err)
		}
		out.Toolchain = status
		for _, w := range status.Warnings {
			out.warn(w)
			p.Warnf("%s", w)
		}
		if status.Installed {
			p.OKf("Installed meteor")
		} else if status.Path != "" {
			p.Debugf("Using meteor %s at %s", status.Version, status.Path)
		}
	} else {
		p.Debugf("Skipping toolchain check for %s", pm.Name)
	}

	// directory-check
	out.enter(StateDirectoryCheck)
	report, err := guard.Assess(req.Root, req.Name)
	if err != nil {
		return out.fail(scaffolderr.Wrap(scaffolderr.EInternal, "checking project directory", err))
	}
	for _, r := range report.Removed {
		p.Debugf("Removed stale %s", r)
	}
	if !report.Safe() {
		guard.PrintConflicts(p.Err, req.Name, report)
		return out.fail(scaffolderr.WithDetails(scaffolderr.EDirectoryConflict,
			fmt.Sprintf("directory %s contains conflicting files", req.Root), nil,
			map[string]string{"conflicts": strings.Join(report.Conflicts, ", ")}))
	}

	src, err := scaffold.OpenSource(ctx, req.Template)
	if err != nil {
		return out.fail(err)
	}
	defer src.Close()
	p.Debugf("Using template %s (%s).", ui.Cyan(src.Ref), src.Kind)

	rules := e.Rules
	if rules == nil {
		rules = scaffold.DefaultRules()
	}
	if report.Owned {
		p.Debugf("Resuming an unfinished run in %s", req.Root)
	} else if existing, err := scaffold.Existing(src.FS, req.Root, rules); err == nil && len(existing) > 0 {
		// Plan errors are reported by Render.
		report.Conflicts = existing
		guard.PrintConflicts(p.Err, req.Name, report)
		return out.fail(scaffolderr.WithDetails(scaffolderr.EDirectoryConflict,
			fmt.Sprintf("directory %s contains files the template would overwrite", req.Root), nil,
			map[string]string{"conflicts": strings.Join(existing, ", ")}))
	}
	marker := guard.Marker{Name: req.Name, Template: req.Template, Stage: string(StateRender), StartedAt: e.now()}
	if err := guard.WriteMarker(req.Root, marker); err != nil {
		return out.fail(scaffolderr.Wrap(scaffolderr.EInternal, "marking project directory", err))
	}

	p.Infof("Creating a new Empirica app in %s.", ui.Green(req.Root))
	p.Blank()

	// render
	out.enter(StateRender)
	cfg, err := project.NewRenderConfig(req.Name)
	if err != nil {
		return out.fail(scaffolderr.Wrap(scaffolderr.ERender, "preparing template data", err))
	}

	p.Infof("Setting up App template.")
	result, err := scaffold.Render(src.FS, req.Root, cfg, rules)
	out.Render = result
	if err != nil {
		p.Failf("Failed to set up the app template; partial output is left in %s", req.Root)
		return out.fail(err)
	}
	for _, w := range result.Warnings {
		out.warn(w)
		p.Warnf("%s", w)
	}
	for _, s := range result.Skipped {
		p.Debugf("Skipped empty %s", s)
	}
	p.OKf("Rendered %d files", len(result.Files))

	// manifest-patch
	manifestPath := filepath.Join(req.Root, manifest.FileName)
	caretDeps := src.Descriptor.CaretDependencies
	if pm.CaretRanges && caretDeps == nil && fileExists(manifestPath) {
		caretDeps, err = manifest.DeclaredDependencies(manifestPath, scaffold.DefaultCaretDependencies)
		if err != nil {
			return out.fail(err)
		}
	}
	if pm.CaretRanges && len(caretDeps) > 0 {
		out.enter(StateManifestPatch)
		patch, err := manifest.PatchCaretRanges(manifestPath, caretDeps)
		if err != nil {
			return out.fail(err)
		}
		out.Patch = patch
		for _, s := range patch.Skipped {
			msg := fmt.Sprintf("kept %s at %s: %s", s.Name, s.Version, s.Reason)
			out.warn(msg)
			p.Warnf("%s", msg)
		}
		if len(patch.Patched) > 0 {
			p.Debugf("Widened %s to caret ranges", strings.Join(patch.Patched, ", "))
		}
	}

	// dependency-install
	out.enter(StateDependencyInstall)
	if pm.NPMFamily {
		if err := runtime.CheckCwd(ctx, e.Runner, req.Root); err != nil {
			out.warn(err.Error())
			p.Warnf("npm may not run in the project directory")
			scaffolderr.Print(p.Err, err)
		}
	}
	if pm.NetworkSensitive && e.Prober != nil {
		if !e.Prober.IsReachable(ctx, e.ProbeHost) {
			out.Offline = true
			msg := "You appear to be offline. Falling back to the local cache."
			out.warn(msg)
			p.Warnf("%s", msg)
		}
	}

	cmd, args := pm.Install(out.Offline)
	p.Infof("Pulling NPM dependencies.")
	p.Debugf("Running %s %s", cmd, strings.Join(args, " "))
	p.Blank()

	stdin := e.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	res, err := e.Runner.Run(ctx, cmd, args, runtime.RunOpts{
		Dir:         req.Root,
		Stdin:       stdin,
		Stdout:      p.Out,
		Stderr:      p.Err,
		Passthrough: true,
	})
	if err != nil {
		return out.fail(scaffolderr.Wrap(scaffolderr.EDependencyInstall, "could not pull NPM dependencies", err))
	}
	if res.ExitCode != 0 {
		err := scaffolderr.WithDetails(scaffolderr.EDependencyInstall,
			fmt.Sprintf("`%s %s` exited with status %d", cmd, strings.Join(args, " "), res.ExitCode), nil,
			map[string]string{"dir": req.Root})
		return out.fail(scaffolderr.WithHints(err, "Fix the problem above and run this command again; stale logs are cleaned up automatically."))
	}

	// done
	out.enter(StateDone)
	if err := guard.RemoveMarker(req.Root); err != nil {
		out.warn(err.Error())
		p.Warnf("%v", err)
	}
	e.printSuccess(req, src.Descriptor)
	return out, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) printSuccess(req project.Request, desc scaffold.Descriptor) {
	p := e.Printer
	p.Blank()
	p.Infof("%s Created %s at %s.", ui.Green("Success!"), req.Name, req.Root)
	p.Blank()
	p.Infof("Inside that directory, you can run the %s command to start the development server.", ui.Cyan(desc.StartCommand))
	p.Blank()
	p.Infof("We suggest that you begin by typing:")
	p.Blank()
	p.Infof("  %s %s", ui.Cyan("cd"), cdTarget(req.Root))
	p.Infof("  %s", ui.Cyan(desc.StartCommand))
	p.Blank()
	p.Infof("Happy experimenting!")
}

// cdTarget returns root relative to the working directory when that is
// shorter, as the operator typed it.
func cdTarget(root string) string {
	wd, err := os.Getwd()
	if err != nil {
		return root
	}
	rel, err := filepath.Rel(wd, root)
	if err != nil || strings.HasPrefix(rel, "..") {
		return root
	}
	return rel
}
