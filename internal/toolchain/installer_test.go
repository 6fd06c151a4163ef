package toolchain

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/runtime"
)

type fakeRunner struct {
	responses map[string]*runtime.Result
	calls     []string
	scripts   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, _ runtime.RunOpts) (*runtime.Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	if name == "sh" && len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		f.scripts = append(f.scripts, string(data))
	}
	if res, ok := f.responses[name]; ok {
		return res, nil
	}
	return nil, errors.New(name + " not found")
}

// lookPathAfter reports the binary missing until installed is set.
type lookPathAfter struct {
	installed bool
}

func (l *lookPathAfter) lookPath(name string) (string, error) {
	if l.installed {
		return "/usr/local/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func found(string) (string, error) { return "/usr/local/bin/meteor", nil }

func TestEnsure_AlreadyInstalled(t *testing.T) {
	runner := &fakeRunner{responses: map[string]*runtime.Result{
		"meteor": {Stdout: "Meteor 1.8.0.2\n"},
	}}
	inst := New(runner, WithLookPath(found), WithMinVersion("1.8.0"))

	status, err := inst.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if status.Installed {
		t.Error("Installed = true, want false")
	}
	if status.Version != "1.8.0" {
		t.Errorf("Version = %q, want 1.8.0", status.Version)
	}
	if len(status.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", status.Warnings)
	}
}

func TestEnsure_OldVersionWarns(t *testing.T) {
	runner := &fakeRunner{responses: map[string]*runtime.Result{
		"meteor": {Stdout: "Meteor 1.6.1\n"},
	}}
	inst := New(runner, WithLookPath(found), WithMinVersion("1.8.0"))

	status, err := inst.Ensure(context.Background())
	if err != nil {
		t.Fatalf("old version must not fail: %v", err)
	}
	if len(status.Warnings) != 1 || !strings.Contains(status.Warnings[0], "older") {
		t.Errorf("Warnings = %v, want one version warning", status.Warnings)
	}
}

func TestEnsure_InstallsWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("#!/bin/sh\necho installing meteor\n"))
	}))
	defer server.Close()

	lp := &lookPathAfter{}
	runner := &fakeRunner{responses: map[string]*runtime.Result{
		"sh":     {},
		"meteor": {Stdout: "Meteor 2.13.3\n"},
	}}
	// The fake installer "installs" meteor when the script runs.
	inst := New(runner,
		WithHTTPClient(server.Client()),
		WithInstallURL(server.URL),
		WithGOOS("linux"),
		WithLookPath(func(name string) (string, error) {
			if len(runner.scripts) > 0 {
				lp.installed = true
			}
			return lp.lookPath(name)
		}),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
	)

	status, err := inst.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !status.Installed {
		t.Error("Installed = false, want true")
	}
	if status.Path != "/usr/local/bin/meteor" {
		t.Errorf("Path = %q", status.Path)
	}
	if len(runner.scripts) != 1 || !strings.Contains(runner.scripts[0], "installing meteor") {
		t.Errorf("installer script not run with downloaded content: %v", runner.scripts)
	}
}

func TestEnsure_InstallerFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("exit 1\n"))
	}))
	defer server.Close()

	runner := &fakeRunner{responses: map[string]*runtime.Result{
		"sh": {ExitCode: 1},
	}}
	inst := New(runner,
		WithHTTPClient(server.Client()),
		WithInstallURL(server.URL),
		WithGOOS("darwin"),
		WithLookPath((&lookPathAfter{}).lookPath),
	)

	_, err := inst.Ensure(context.Background())
	if code := scaffolderr.GetCode(err); code != scaffolderr.EToolchainInstall {
		t.Errorf("code = %q, want %q", code, scaffolderr.EToolchainInstall)
	}
}

func TestEnsure_DownloadFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	runner := &fakeRunner{}
	inst := New(runner,
		WithHTTPClient(server.Client()),
		WithInstallURL(server.URL),
		WithGOOS("linux"),
		WithLookPath((&lookPathAfter{}).lookPath),
	)

	_, err := inst.Ensure(context.Background())
	if code := scaffolderr.GetCode(err); code != scaffolderr.EToolchainInstall {
		t.Errorf("code = %q, want %q", code, scaffolderr.EToolchainInstall)
	}
	if len(runner.calls) != 0 {
		t.Errorf("installer should not run after a failed download, calls: %v", runner.calls)
	}
}

func TestEnsure_WindowsManualInstall(t *testing.T) {
	runner := &fakeRunner{}
	inst := New(runner, WithGOOS("windows"), WithLookPath((&lookPathAfter{}).lookPath))

	_, err := inst.Ensure(context.Background())
	se, ok := scaffolderr.As(err)
	if !ok || se.Code != scaffolderr.EToolchainInstall {
		t.Fatalf("expected E_TOOLCHAIN_INSTALL, got %v", err)
	}
	if len(se.Hints) == 0 || !strings.Contains(se.Hints[0], "install.meteor.com/windows") {
		t.Errorf("Hints = %v, want manual installer URL", se.Hints)
	}
	if len(runner.calls) != 0 {
		t.Errorf("nothing should run on windows, calls: %v", runner.calls)
	}
}

func TestEnsure_NotOnPathAfterInstall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("true\n"))
	}))
	defer server.Close()

	runner := &fakeRunner{responses: map[string]*runtime.Result{"sh": {}}}
	inst := New(runner,
		WithHTTPClient(server.Client()),
		WithInstallURL(server.URL),
		WithGOOS("linux"),
		WithLookPath((&lookPathAfter{}).lookPath),
	)

	status, err := inst.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(status.Warnings) != 1 {
		t.Errorf("Warnings = %v, want PATH warning", status.Warnings)
	}
}
