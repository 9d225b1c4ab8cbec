package config

import (
	"fmt"
	"time"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Git     GitConfig     `mapstructure:"git" yaml:"git"`
	Scan    ScanConfig    `mapstructure:"scan" yaml:"scan"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory string   `mapstructure:"directory" yaml:"directory"`
	Formats   []string `mapstructure:"formats" yaml:"formats"`
}

// GitConfig contains clone settings
type GitConfig struct {
	Depth      int           `mapstructure:"depth" yaml:"depth"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// ScanConfig contains traversal settings
type ScanConfig struct {
	// MaxFileSize caps the bytes read per file; 0 means unlimited.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
	Progress    bool  `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for
// out-of-range values.
func (c *Config) Validate() error {
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = append([]string(nil), DefaultFormats...)
	}
	for _, f := range c.Output.Formats {
		if !validFormats[f] {
			return fmt.Errorf("unknown output format: %s", f)
		}
	}
	if c.Git.Depth < 0 {
		c.Git.Depth = DefaultCloneDepth
	}
	if c.Git.Timeout < time.Second {
		c.Git.Timeout = DefaultCloneTimeout
	}
	if c.Git.MaxRetries < 0 {
		c.Git.MaxRetries = DefaultMaxRetries
	}
	if c.Scan.MaxFileSize < 0 {
		c.Scan.MaxFileSize = 0
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

var validFormats = map[string]bool{
	"json": true,
	"md":   true,
	"txt":  true,
}
