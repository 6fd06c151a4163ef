// Package ui formats terminal output: ANSI colours that are used only on a
// terminal and honour NO_COLOR, and a Printer that writes status lines to
// injected writers.
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

var colorEnabled = AutoColor(os.Stdout)

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	Fd() uintptr
}

var isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }

// AutoColor reports whether output to w should be coloured: NO_COLOR is
// unset and w is a terminal.
func AutoColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(fdWriter)
	return ok && isTerminal(f.Fd())
}

// SetColor enables or disables ANSI colours globally.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + ColorReset
}

func Red(s string) string    { return paint(ColorRed, s) }
func Green(s string) string  { return paint(ColorGreen, s) }
func Yellow(s string) string { return paint(ColorYellow, s) }
func Cyan(s string) string   { return paint(ColorCyan, s) }
func Gray(s string) string   { return paint(ColorGray, s) }

// Printer writes progress to Out and diagnostics to Err.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

// NewPrinter returns a Printer. Nil writers default to os.Stdout and
// os.Stderr.
func NewPrinter(out, errOut io.Writer, verbose bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{Out: out, Err: errOut, Verbose: verbose}
}

// Infof prints a plain progress line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// OKf prints a line tagged [ OK ].
func (p *Printer) OKf(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", Green("[ OK ]"), fmt.Sprintf(format, args...))
}

// Warnf prints a line tagged [WARN] to Err.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", Yellow("[WARN]"), fmt.Sprintf(format, args...))
}

// Failf prints a line tagged [FAIL] to Err.
func (p *Printer) Failf(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", Red("[FAIL]"), fmt.Sprintf(format, args...))
}

// Debugf prints only in verbose mode.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintln(p.Out, Gray(fmt.Sprintf(format, args...)))
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.Out)
}
