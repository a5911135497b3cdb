// Package config handles platformtool configuration loading and management.
package config

import "time"

// Config holds all tool settings.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Export  ExportConfig  `yaml:"export"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig holds mesh build settings.
type BuildConfig struct {
	Strategy         string        `yaml:"strategy"`     // Strategy name, see strategy.Names
	Subdivisions     int           `yaml:"subdivisions"` // Rows inserted per pair by "smooth"
	GridSize         float32       `yaml:"grid_size"`    // Grid used by "snap"
	ThrottleInterval time.Duration `yaml:"throttle_interval"`
}

// ExportConfig holds OBJ output settings.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Tick time.Duration `yaml:"tick"` // How often pending edits are checked
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Strategy:         "none",
			Subdivisions:     4,
			GridSize:         0.25,
			ThrottleInterval: 100 * time.Millisecond,
		},
		Export: ExportConfig{
			Dir: "meshes",
		},
		Watch: WatchConfig{
			Tick: 20 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
