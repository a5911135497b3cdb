package config

import (
	"flag"
	"time"
)

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagStrategy     = flag.String("strategy", "", "Build strategy (none, passthrough, smooth, snap, lock)")
	flagSubdivisions = flag.Int("subdivisions", -1, "Rows inserted between sections by the smooth strategy")
	flagOut          = flag.String("out", "", "Directory for exported meshes")
	flagThrottle     = flag.Duration("throttle", 0, "Minimum time between rebuilds in watch mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStrategy != "" {
		cfg.Build.Strategy = *flagStrategy
	}
	if *flagSubdivisions >= 0 {
		cfg.Build.Subdivisions = *flagSubdivisions
	}
	if *flagOut != "" {
		cfg.Export.Dir = *flagOut
	}
	if *flagThrottle > 0 {
		cfg.Build.ThrottleInterval = *flagThrottle
	}
}

// resetFlags restores the flag defaults.
func resetFlags() {
	*flagConfig = ""
	*flagDebug = false
	*flagStrategy = ""
	*flagSubdivisions = -1
	*flagOut = ""
	*flagThrottle = time.Duration(0)
}
