package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Output defaults
	DefaultOutputDir = "."

	// Git defaults
	DefaultCloneDepth   = 1
	DefaultCloneTimeout = 10 * time.Minute
	DefaultMaxRetries   = 3

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultFormats lists every output encoding, in write order.
var DefaultFormats = []string{"json", "md", "txt"}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reposnap"
	}
	return filepath.Join(home, ".reposnap")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Formats:   append([]string(nil), DefaultFormats...),
		},
		Git: GitConfig{
			Depth:      DefaultCloneDepth,
			Timeout:    DefaultCloneTimeout,
			MaxRetries: DefaultMaxRetries,
		},
		Scan: ScanConfig{
			MaxFileSize: 0,
			Progress:    true,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
