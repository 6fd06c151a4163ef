package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/runtime"
	"github.com/empiricaly/create-empirica-app/internal/ui"
)

type fakeRunner struct {
	results map[string]*runtime.Result
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, _ runtime.RunOpts) (*runtime.Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	if res, ok := f.results[key]; ok {
		return res, nil
	}
	return &runtime.Result{ExitCode: 1}, nil
}

func TestResolvePackageManager(t *testing.T) {
	tests := []struct {
		name       string
		explicit   string
		useNpm     bool
		useYarn    bool
		configured string
		want       string
		wantErr    bool
	}{
		{name: "default", want: "meteor"},
		{name: "configured", configured: "yarn", want: "yarn"},
		{name: "use-npm beats config", useNpm: true, configured: "yarn", want: "npm"},
		{name: "use-yarn", useYarn: true, want: "yarn"},
		{name: "explicit wins", explicit: "npm", useYarn: true, want: "npm"},
		{name: "explicit normalized", explicit: " Yarn ", want: "yarn"},
		{name: "unknown", explicit: "pnpm", wantErr: true},
		{name: "unknown configured", configured: "bower", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePackageManager(tt.explicit, tt.useNpm, tt.useYarn, tt.configured)
			if tt.wantErr {
				if scaffolderr.GetCode(err) != scaffolderr.EUsage {
					t.Fatalf("expected E_USAGE, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolvePackageManager() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintInfo(t *testing.T) {
	runner := &fakeRunner{results: map[string]*runtime.Result{
		"meteor --version": {Stdout: "Meteor 1.8.0.2\n"},
		"node --version":   {Stdout: "v10.16.0\n"},
	}}
	lookPath := func(name string) (string, error) {
		switch name {
		case "meteor", "node", "npm":
			return "/usr/local/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	var buf bytes.Buffer
	printInfo(context.Background(), &buf, runner, lookPath)
	out := buf.String()

	for _, want := range []string{
		"Environment Info:",
		"[ OK ] meteor Meteor 1.8.0.2 at /usr/local/bin/meteor",
		"[ OK ] node v10.16.0 at /usr/local/bin/node",
		"[ OK ] npm unknown version at /usr/local/bin/npm",
		"[MISS] yarn not found",
		"[MISS] git not found",
		"HTTPS proxy:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"v1.2.3\n", "v1.2.3"},
		{"  git version 2.40.0\nextra\n", "git version 2.40.0"},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheckConfigKey(t *testing.T) {
	if err := checkConfigKey("template"); err != nil {
		t.Errorf("template: unexpected error %v", err)
	}

	err := checkConfigKey("nope")
	se, ok := scaffolderr.As(err)
	if !ok || se.Code != scaffolderr.EUsage {
		t.Fatalf("expected E_USAGE, got %v", err)
	}
	if len(se.Hints) != 1 || !strings.Contains(se.Hints[0], "package_manager") {
		t.Errorf("hints = %v", se.Hints)
	}
}

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	ui.SetColor(false)
	t.Cleanup(func() {
		ui.SetColor(true)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		flagInfo = false
		_ = rootCmd.Flags().Set("version", "false")
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := Execute("1.2.3", "abc123", "2026-01-01")
	return out.String(), errOut.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, _, err := executeRoot(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "create-empirica-app 1.2.3 (commit: abc123, built: 2026-01-01)\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRootWithoutDirectory(t *testing.T) {
	_, errOut, err := executeRoot(t)
	if scaffolderr.GetCode(err) != scaffolderr.EUsage {
		t.Fatalf("expected E_USAGE, got %v", err)
	}
	if !strings.Contains(errOut, "Please specify the project directory") {
		t.Errorf("stderr = %q", errOut)
	}
	if !strings.Contains(errOut, "create-empirica-app my-experiment") {
		t.Errorf("stderr missing example: %q", errOut)
	}
}

func TestRootTooManyArgs(t *testing.T) {
	_, _, err := executeRoot(t, "a", "b")
	if err == nil {
		t.Fatal("expected error for two positional args")
	}
}
