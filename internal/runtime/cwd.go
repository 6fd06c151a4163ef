package runtime

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
)

const cwdPrefix = "; cwd = "

// NPMCwd asks npm which directory it believes it runs in. It returns "" when
// npm cannot be run or does not report a cwd.
func NPMCwd(ctx context.Context, runner Runner, dir string) string {
	res, err := runner.Run(ctx, "npm", []string{"config", "list"}, RunOpts{Dir: dir})
	if err != nil || res.ExitCode != 0 {
		return ""
	}

	scanner := bufio.NewScanner(strings.NewReader(res.Stdout))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, cwdPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, cwdPrefix))
		}
	}
	return ""
}

// CheckCwd compares the directory npm reports with cwd. A mismatch yields an
// E_CWD_MISMATCH error with remediation hints; callers treat it as a warning.
// Any failure to obtain npm's view passes the check.
func CheckCwd(ctx context.Context, runner Runner, cwd string) error {
	npmCwd := NPMCwd(ctx, runner, cwd)
	if npmCwd == "" || samePath(npmCwd, cwd) {
		return nil
	}

	err := scaffolderr.WithDetails(scaffolderr.ECwdMismatch,
		"could not start an npm process in the right directory", nil,
		map[string]string{"cwd": cwd, "npm_cwd": npmCwd})
	return scaffolderr.WithHints(err,
		"The current directory is: "+cwd,
		"However, a newly started npm process runs in: "+npmCwd,
		"This is probably caused by a misconfigured system terminal shell.",
		"On Windows, check the Command Processor AutoRun registry values",
		"  HKEY_CURRENT_USER\\Software\\Microsoft\\Command Processor",
		"  HKEY_LOCAL_MACHINE\\Software\\Microsoft\\Command Processor",
		"and remove any directory changes they make.",
	)
}

// samePath reports whether a and b name the same directory. npm reports a
// physical path while cwd may run through symlinks.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	return errA == nil && errB == nil && ra == rb
}
