package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/empiricaly/create-empirica-app/internal/netcheck"
	"github.com/empiricaly/create-empirica-app/internal/runtime"
)

// infoBinaries are reported by --info.
var infoBinaries = []string{"meteor", "node", "npm", "yarn", "git"}

// printInfo writes the environment report shown by --info. lookPath
// defaults to exec.LookPath.
func printInfo(ctx context.Context, w io.Writer, runner runtime.Runner, lookPath func(string) (string, error)) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	fmt.Fprintln(w, "Environment Info:")
	fmt.Fprintf(w, "  %s\n", versionLine())
	fmt.Fprintf(w, "  OS: %s/%s\n", goruntime.GOOS, goruntime.GOARCH)
	fmt.Fprintf(w, "  Go: %s\n", goruntime.Version())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Binaries:")
	for _, name := range infoBinaries {
		checkBinary(ctx, w, runner, lookPath, name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Network:")
	if p := netcheck.ProxyFromEnvironment(); p != "" {
		fmt.Fprintf(w, "  HTTPS proxy: %s\n", p)
	} else {
		fmt.Fprintln(w, "  HTTPS proxy: (none)")
	}
}

func checkBinary(ctx context.Context, w io.Writer, runner runtime.Runner, lookPath func(string) (string, error), name string) {
	path, err := lookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}

	version := "unknown version"
	if runner != nil {
		if res, err := runner.Run(ctx, name, []string{"--version"}, runtime.RunOpts{}); err == nil && res.ExitCode == 0 {
			if line := firstLine(res.Stdout); line != "" {
				version = line
			}
		}
	}
	fmt.Fprintf(w, "  [ OK ] %s %s at %s\n", name, version, path)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
