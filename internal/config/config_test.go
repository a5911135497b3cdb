package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Build.Strategy != "none" {
		t.Errorf("expected strategy 'none', got %s", cfg.Build.Strategy)
	}
	if cfg.Build.Subdivisions != 4 {
		t.Errorf("expected 4 subdivisions, got %d", cfg.Build.Subdivisions)
	}
	if cfg.Build.ThrottleInterval != 100*time.Millisecond {
		t.Errorf("expected throttle 100ms, got %v", cfg.Build.ThrottleInterval)
	}
	if cfg.Export.Dir != "meshes" {
		t.Errorf("expected export dir 'meshes', got %s", cfg.Export.Dir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
build:
  strategy: smooth
  subdivisions: 8
  grid_size: 0.5
  throttle_interval: 250ms

export:
  dir: out/meshes

watch:
  tick: 50ms

logging:
  level: "debug"
  log_file: "platformtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Build.Strategy != "smooth" {
		t.Errorf("expected strategy smooth, got %s", cfg.Build.Strategy)
	}
	if cfg.Build.Subdivisions != 8 {
		t.Errorf("expected 8 subdivisions, got %d", cfg.Build.Subdivisions)
	}
	if cfg.Build.GridSize != 0.5 {
		t.Errorf("expected grid size 0.5, got %f", cfg.Build.GridSize)
	}
	if cfg.Build.ThrottleInterval != 250*time.Millisecond {
		t.Errorf("expected throttle 250ms, got %v", cfg.Build.ThrottleInterval)
	}
	if cfg.Export.Dir != "out/meshes" {
		t.Errorf("expected export dir out/meshes, got %s", cfg.Export.Dir)
	}
	if cfg.Watch.Tick != 50*time.Millisecond {
		t.Errorf("expected tick 50ms, got %v", cfg.Watch.Tick)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "platformtool.log" {
		t.Errorf("expected log file 'platformtool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("build:\n  strategy: snap\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Build.Strategy != "snap" {
		t.Errorf("expected strategy snap, got %s", cfg.Build.Strategy)
	}
	// Untouched keys keep their defaults.
	if cfg.Build.Subdivisions != 4 {
		t.Errorf("expected default subdivisions, got %d", cfg.Build.Subdivisions)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
build:
  subdivisions: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/platformtool.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative subdivisions", func(c *Config) { c.Build.Subdivisions = -1 }},
		{"negative grid", func(c *Config) { c.Build.GridSize = -0.5 }},
		{"negative throttle", func(c *Config) { c.Build.ThrottleInterval = -time.Second }},
		{"zero tick", func(c *Config) { c.Watch.Tick = 0 }},
		{"empty export dir", func(c *Config) { c.Export.Dir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("build:\n  strategy: lock\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		setup  func()
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "strategy flag",
			setup: func() { *flagStrategy = "smooth" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Build.Strategy != "smooth" {
					t.Errorf("expected strategy smooth, got %s", cfg.Build.Strategy)
				}
			},
		},
		{
			name:  "zero subdivisions",
			setup: func() { *flagSubdivisions = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Build.Subdivisions != 0 {
					t.Errorf("expected 0 subdivisions, got %d", cfg.Build.Subdivisions)
				}
			},
		},
		{
			name:  "unset subdivisions",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Build.Subdivisions != 4 {
					t.Errorf("expected default subdivisions, got %d", cfg.Build.Subdivisions)
				}
			},
		},
		{
			name: "out and throttle flags",
			setup: func() {
				*flagOut = "/tmp/meshes"
				*flagThrottle = time.Second
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Dir != "/tmp/meshes" {
					t.Errorf("expected export dir /tmp/meshes, got %s", cfg.Export.Dir)
				}
				if cfg.Build.ThrottleInterval != time.Second {
					t.Errorf("expected throttle 1s, got %v", cfg.Build.ThrottleInterval)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer resetFlags()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
build:
  strategy: snap
  subdivisions: 2
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagStrategy = "smooth"
	defer resetFlags()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Strategy comes from the flag, subdivisions from the file.
	if cfg.Build.Strategy != "smooth" {
		t.Errorf("expected strategy smooth from flag, got %s", cfg.Build.Strategy)
	}
	if cfg.Build.Subdivisions != 2 {
		t.Errorf("expected 2 subdivisions from file, got %d", cfg.Build.Subdivisions)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("watch:\n  tick: 0s\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer resetFlags()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Build.Strategy = "lock"
	cfg.Build.ThrottleInterval = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Build.Strategy != "lock" {
		t.Errorf("expected strategy lock, got %s", loaded.Build.Strategy)
	}
	if loaded.Build.ThrottleInterval != 2*time.Second {
		t.Errorf("expected throttle 2s, got %v", loaded.Build.ThrottleInterval)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	if err := Default().Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ConfigDir(), FileName)); err != nil {
		t.Errorf("expected saved config: %v", err)
	}
}
