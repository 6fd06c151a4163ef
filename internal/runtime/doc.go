// Package runtime runs the external programs the scaffolder depends on: the
// package managers that install a generated project's dependencies and the
// npm diagnostics consulted before installing. Every invocation goes through
// the Runner interface so callers can substitute a fake in tests.
package runtime
