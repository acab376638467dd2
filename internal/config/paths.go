package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// DataDir returns the path to the bioalign data directory.
// - BIOALIGN_HOME, when set
// - Windows: %APPDATA%\bioalign
// - Other OS: ~/.bioalign
func DataDir() string {
	if dir := os.Getenv("BIOALIGN_HOME"); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "bioalign")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".bioalign"
	}
	return filepath.Join(home, ".bioalign")
}

// DBPath returns the path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "bioalign.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}

// LoadDotEnv loads the first existing file in paths into the environment.
// Variables already set in the environment are not overwritten.
// Returns the loaded path, or "" when none of the files exist. On error the
// path of the file that failed to load is returned with it.
func LoadDotEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env", filepath.Join(DataDir(), ".env")}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return p, err
		}
		return p, nil
	}
	return "", nil
}
