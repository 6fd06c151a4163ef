// Package errors defines the stable error codes reported by create-empirica-app
// and the single exit-status policy applied by main.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Code is a stable error code string.
type Code string

// Error codes.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Pre-flight
	EInvalidProjectName Code = "E_INVALID_PROJECT_NAME"
	EDirectoryConflict  Code = "E_DIRECTORY_CONFLICT"
	EToolchainInstall   Code = "E_TOOLCHAIN_INSTALL"

	// Scaffolding
	ERender            Code = "E_RENDER"
	EMissingDependency Code = "E_MISSING_DEPENDENCY"
	EPatch             Code = "E_PATCH"

	// Subprocesses
	EDependencyInstall Code = "E_DEPENDENCY_INSTALL"
	ECwdMismatch       Code = "E_CWD_MISMATCH"
)

// ScaffoldError is the error type returned by every engine stage.
type ScaffoldError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
	Hints   []string          // remediation lines shown to the operator
}

// Error returns "CODE: message[: cause]".
func (e *ScaffoldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ScaffoldError) Unwrap() error {
	return e.Cause
}

// New creates a ScaffoldError with the given code and message.
func New(code Code, msg string) error {
	return &ScaffoldError{Code: code, Msg: msg}
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...any) error {
	return &ScaffoldError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a ScaffoldError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &ScaffoldError{Code: code, Msg: msg, Cause: err}
}

// WithDetails returns a ScaffoldError carrying a copy of details.
func WithDetails(code Code, msg string, err error, details map[string]string) error {
	return &ScaffoldError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// WithHints attaches remediation lines to err. Non-ScaffoldErrors are wrapped
// as E_INTERNAL.
func WithHints(err error, hints ...string) error {
	if err == nil {
		return nil
	}
	se, ok := As(err)
	if !ok {
		return &ScaffoldError{Code: EInternal, Msg: err.Error(), Cause: err, Hints: hints}
	}
	cp := *se
	cp.Hints = append(append([]string(nil), se.Hints...), hints...)
	return &cp
}

// GetCode extracts the error code from an error, or empty string if err is
// not a ScaffoldError.
func GetCode(err error) Code {
	if se, ok := As(err); ok {
		return se.Code
	}
	return ""
}

// As returns (*ScaffoldError, true) if err is or wraps a ScaffoldError.
func As(err error) (*ScaffoldError, bool) {
	var se *ScaffoldError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns 0 for nil and 1 for every fatal condition.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Print writes a human-readable diagnostic for err to w.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	se, ok := As(err)
	if !ok {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "error_code: %s\n", se.Code)
	if se.Cause != nil {
		fmt.Fprintf(w, "%s: %v\n", se.Msg, se.Cause)
	} else {
		fmt.Fprintln(w, se.Msg)
	}

	if len(se.Details) > 0 {
		keys := make([]string, 0, len(se.Details))
		for k := range se.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, se.Details[k])
		}
	}
	if len(se.Hints) > 0 {
		fmt.Fprintln(w)
		for _, h := range se.Hints {
			fmt.Fprintln(w, h)
		}
	}
}
