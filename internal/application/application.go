package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "petgallery"

	// EnvPrefix prefixes every environment variable read by the configuration
	EnvPrefix = "PETGALLERY"

	// LogFileName is the log file used while the TUI owns the terminal
	LogFileName = "petgallery.log"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the petgallery configuration directory path.
// Linux: ~/.config/petgallery (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\petgallery (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

// DefaultLogFile returns the log file path inside the application directory.
// Falls back to the temp directory when no config directory is available.
func DefaultLogFile() string {
	dir, err := GetApplicationDirectory()
	if err != nil {
		dir = filepath.Join(os.TempDir(), AppName)
	}

	return filepath.Join(dir, LogFileName)
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
