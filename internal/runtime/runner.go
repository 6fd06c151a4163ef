package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts RunOpts) (*Result, error)
}

// RunOpts configures a single command invocation.
type RunOpts struct {
	Dir    string
	Env    map[string]string // added to the inherited environment
	Stdin  io.Reader
	Stdout io.Writer // streamed to in addition to capture
	Stderr io.Writer
	// Passthrough attaches Stdout and Stderr to the child directly and
	// captures nothing, so a terminal stays a terminal for the child.
	Passthrough bool
}

// Result captures the outcome of a command. A non-zero exit is reported in
// ExitCode rather than as an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name with args and waits for it to exit. The returned error is
// for commands that could not be started.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (*Result, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	if len(opts.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), opts.Env)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	switch {
	case opts.Passthrough:
		cmd.Stdout = opts.Stdout
		cmd.Stderr = opts.Stderr
	default:
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
		if opts.Stdout != nil {
			cmd.Stdout = io.MultiWriter(opts.Stdout, &stdoutBuf)
		}
		if opts.Stderr != nil {
			cmd.Stderr = io.MultiWriter(opts.Stderr, &stderrBuf)
		}
	}

	err = cmd.Run()

	result := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("running %s: %w", name, err)
	}
	return result, nil
}

// mergeEnv applies overrides to env in sorted key order.
func mergeEnv(env []string, overrides map[string]string) []string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnv(env, k, overrides[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
