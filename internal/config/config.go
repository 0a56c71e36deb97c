// Package config handles exporter configuration loading and management.
package config

import "github.com/Faultbox/stlexport/pkg/stl"

// Version is stamped into the default STL header.
const Version = "0.3.0"

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds STL output settings.
type ExportConfig struct {
	Header string   `yaml:"header"` // Padded or truncated to 80 bytes
	Format stl.Mode `yaml:"format"` // binary or ascii
	Output string   `yaml:"output"` // Output path, "-" or empty for stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultHeader returns the header written when none is configured.
func DefaultHeader() string {
	return "solid model generated by stlexport " + Version
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Header: DefaultHeader(),
			Format: stl.Binary,
			Output: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
