// Package platform holds the OS-dependent filesystem helpers: setting
// permission bits (a no-op on Windows) and atomic file replacement.
package platform
