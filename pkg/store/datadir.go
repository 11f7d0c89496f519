package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "voteflow"

// DefaultDataDir returns the OS-appropriate directory holding the vote state
// and the log file.
//
//   - macOS:   ~/Library/Application Support/voteflow
//   - Linux:   $XDG_DATA_HOME/voteflow (fallback ~/.local/share/voteflow)
//   - Windows: %LOCALAPPDATA%\voteflow (fallback %APPDATA%\voteflow)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		for _, v := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(v); dir != "" {
				return filepath.Join(dir, appName)
			}
		}
		return filepath.Join(home, appName)
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}
