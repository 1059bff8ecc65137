package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dirs holds the resolved platform directories for one application.
// The rest of the system treats these as opaque path strings.
type Dirs struct {
	// Cache holds regenerable data (safe to wipe).
	Cache string

	// Data holds persistent application files.
	Data string

	// Temp holds short-lived scratch files and directories.
	Temp string
}

// Resolve returns the platform-appropriate directories for appName.
//
//   - Cache: os.UserCacheDir()/<appName> (e.g. ~/.cache/<appName> on Linux,
//     ~/Library/Caches/<appName> on macOS, %LocalAppData%\<appName> on Windows)
//   - Data: per-user application data directory/<appName>
//   - Temp: os.TempDir()/<appName>
func Resolve(appName string) Dirs {
	return Dirs{
		Cache: filepath.Join(cacheDir(), appName),
		Data:  filepath.Join(dataDir(), appName),
		Temp:  filepath.Join(os.TempDir(), appName),
	}
}

// EnsureAll creates every resolved directory that does not yet exist.
func (d Dirs) EnsureAll() error {
	for _, dir := range []string{d.Cache, d.Data, d.Temp} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	return os.TempDir()
}

// dataDir returns the per-user application data directory.
//
//   - Windows: %APPDATA% (e.g. C:\Users\Alice\AppData\Roaming)
//   - macOS:   ~/Library/Application Support
//   - Linux:   $XDG_DATA_HOME or ~/.local/share
func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "AppData", "Roaming")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support")
	default:
		if v := os.Getenv("XDG_DATA_HOME"); v != "" {
			return v
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share")
	}
}
