package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort  string    `toml:"server_port"`
	BaseURL     string    `toml:"base_url"`
	Title       string    `toml:"title"`
	Description string    `toml:"description"`
	EnableAdmin *bool     `toml:"enable_admin"`
	RateLimit   *float64  `toml:"rate_limit"`
	RateBurst   *int      `toml:"rate_burst"`
	LogLevel    string    `toml:"log_level"`
	LogFormat   string    `toml:"log_format"`
	SentryDSN   string    `toml:"sentry_dsn"`
	Environment string    `toml:"environment"`
	DBPath      string    `toml:"db_path"`
	Links       []NavLink `toml:"links"`
}

// NavLink maps a button label to a page on the companion app.
// Route is joined onto base_url; URL, when set, is used as-is.
type NavLink struct {
	Label string `toml:"label"`
	Route string `toml:"route"`
	URL   string `toml:"url"`
}

// ConfigPath returns the path to the config file (~/.bioalign/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file at path.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# bioalign configuration
# server_port = ":8080"
# enable_admin = true
# log_level = "info"      # debug, info, warn, error
# log_format = "text"     # text or json
# rate_limit = 20         # requests per second per client, 0 disables
# rate_burst = 40
# sentry_dsn = ""
# environment = "development"

# Landing page content
# title = "Biological Alignment Tool"
# description = "This webapp serves as an educational tool for alignment for biological applications."

# Root of the alignment app the navigation buttons point at
# base_url = "http://localhost:8501"

# Navigation buttons, in display order. route is appended to base_url;
# set url instead to link somewhere else entirely.
# [[links]]
# label = "Background"
# route = "Background"

# [[links]]
# label = "Global Alignment"
# route = "Global_Alignment"

# [[links]]
# label = "Local Alignment"
# route = "Local_Alignment"
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
