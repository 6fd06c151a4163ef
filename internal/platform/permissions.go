package platform

import (
	"os"
	"runtime"
)

// SetMode makes the permission bits of path equal mode. os.WriteFile only
// applies its mode when it creates a file, so a rewritten file keeps stale
// bits without this. Umask is bypassed. No-op on Windows.
func SetMode(path string, mode os.FileMode) error {
	if IsWindows() {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm() == mode.Perm() {
		return nil
	}
	return os.Chmod(path, mode.Perm())
}

// IsWindows reports whether the current OS is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
