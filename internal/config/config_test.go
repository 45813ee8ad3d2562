package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

func TestLoad_MissingConfig(t *testing.T) {
	t.Setenv("STREAKS_CONFIG", "nonexistent.yaml")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoad_DefaultPathOptional(t *testing.T) {
	t.Setenv("STREAKS_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults without a config file, got %v", err)
	}
	if cfg.DBPath != "streaks.db" || cfg.Board.CelebrateMS != 1200 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	t.Setenv("STREAKS_CONFIG", configFile)

	c := Default()
	c.DBPath = filepath.Join(tmpDir, "custom.db")
	c.Theme.Palette = "ocean"
	d, err := yaml.Marshal(&c)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configFile, d, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal("error opening config:", err)
	}
	if cfg.DBPath != c.DBPath || cfg.Theme.Palette != "ocean" {
		t.Fatalf("config not applied: %+v", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("STREAKS_CONFIG", configFile)
	if err := os.WriteFile(configFile, []byte("storage: memory\nlog:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != "memory" || cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STREAKS_CONFIG", "")
	t.Setenv("STREAKS_DB_PATH", "/tmp/other.db")
	t.Setenv("STREAKS_NUDGE_THRESHOLD", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/other.db" || cfg.Nudge.ThresholdHours != 6 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}

	t.Setenv("STREAKS_NUDGE_THRESHOLD", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric threshold")
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Storage = "postgres"
	c.Log.Format = "xml"
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation errors")
	}
}

func TestLoad_StorageOverride(t *testing.T) {
	t.Setenv("STREAKS_CONFIG", "")
	t.Setenv("STREAKS_STORAGE", "sqlite")
	t.Setenv("STREAKS_DB_PATH", "boards.sqlite")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != "sqlite" || cfg.DBPath != "boards.sqlite" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	t.Setenv("STREAKS_STORAGE", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestLoad_EmptyEnvFallsBackToOptionalDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("STREAKS_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("empty STREAKS_CONFIG with no config.yaml should load defaults, got %v", err)
	}
	if cfg.Storage != "bolt" {
		t.Fatalf("unexpected storage %q", cfg.Storage)
	}

	if err := os.WriteFile(defaultPath, []byte("storage: memory\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != "memory" {
		t.Fatalf("config.yaml not read, storage %q", cfg.Storage)
	}
}

func TestValidate_Enums(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"theme mode", func(c *Config) { c.Theme.Mode = "sepia" }},
		{"theme palette", func(c *Config) { c.Theme.Palette = "neon" }},
		{"board layout", func(c *Config) { c.Board.Layout = "year" }},
		{"board shape", func(c *Config) { c.Board.Shape = "hexagon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	c := Default()
	c.Theme.Mode = "Light"
	c.Theme.Palette = "OCEAN"
	if err := c.Validate(); err != nil {
		t.Fatalf("theme values are case-insensitive, got %v", err)
	}
}

func TestLoad_BadLayoutFailsAtLoad(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("STREAKS_CONFIG", configFile)
	if err := os.WriteFile(configFile, []byte("board:\n  layout: year\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected load to reject unknown board layout")
	}
}
