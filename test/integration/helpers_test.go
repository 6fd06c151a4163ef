//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/empiricaly/create-empirica-app/internal/ui"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME, so user settings never leak in
	BinDir  string // prepended to PATH; holds the stub toolchain
	WorkDir string // parent of the generated projects
	LogFile string // every stub invocation is appended here
}

// setupTestEnv creates isolated temp directories, installs stub meteor, npm
// and yarn binaries on PATH, and chdirs into WorkDir.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("STUB_LOG", env.LogFile)
	t.Setenv("HTTPS_PROXY", "")
	t.Setenv("https_proxy", "")
	t.Chdir(env.WorkDir)

	ui.SetColor(false)
	t.Cleanup(func() { ui.SetColor(true) })

	writeStub(t, env.BinDir, "meteor", `
echo "meteor $*" >> "$STUB_LOG"
case "$1" in
  --version) echo "Meteor 1.8.0.2" ;;
  npm) shift; exec npm "$@" ;;
esac
`)
	writeStub(t, env.BinDir, "npm", `
echo "npm $*" >> "$STUB_LOG"
case "$1" in
  config) echo "; cwd = $(pwd)" ;;
  install)
    [ -n "$STUB_FAIL_INSTALL" ] && { echo "npm ERR! network" >&2; exit 1; }
    mkdir -p node_modules && echo npm > node_modules/.installed ;;
esac
`)
	writeStub(t, env.BinDir, "yarn", `
echo "yarn $*" >> "$STUB_LOG"
mkdir -p node_modules && echo "yarn $*" > node_modules/.installed
`)

	return env
}

// writeStub creates an executable shell script named name in dir.
func writeStub(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("writing stub %s: %v", name, err)
	}
}

// calls returns the stub invocations recorded so far.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading stub log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertContainsCall fails unless want was one of the recorded calls.
func assertContainsCall(t *testing.T, calls []string, want string) {
	t.Helper()
	for _, c := range calls {
		if c == want {
			return
		}
	}
	t.Errorf("expected call %q, got %v", want, calls)
}
