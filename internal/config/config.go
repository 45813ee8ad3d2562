package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/streaks/pkg/streak"
	"go.yaml.in/yaml/v4"
)

const defaultPath = "config.yaml"

type Config struct {
	DBPath     string `yaml:"db_path"`
	Storage    string `yaml:"storage"`
	ListenAddr string `yaml:"listen_addr"`
	APIBaseURL string `yaml:"api_base_url"`

	Log   LogConfig   `yaml:"log"`
	Theme ThemeConfig `yaml:"theme"`
	Board BoardConfig `yaml:"board"`
	Nudge NudgeConfig `yaml:"nudge"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ThemeConfig struct {
	Mode    string `yaml:"mode"`
	Accent  string `yaml:"accent"`
	Palette string `yaml:"palette"`
}

// BoardConfig holds defaults for new boards and the interactive board.
type BoardConfig struct {
	Layout      string `yaml:"layout"`
	Shape       string `yaml:"shape"`
	CelebrateMS int    `yaml:"celebrate_ms"`
	Hover       bool   `yaml:"hover"`
	Sound       bool   `yaml:"sound"`
}

func (b BoardConfig) CelebrateFor() time.Duration {
	return time.Duration(b.CelebrateMS) * time.Millisecond
}

type NudgeConfig struct {
	Email          string `yaml:"email"`
	ResendAPIKey   string `yaml:"resend_api_key"`
	From           string `yaml:"from"`
	ThresholdHours int    `yaml:"threshold_hours"`
}

func Default() Config {
	return Config{
		DBPath:     "streaks.db",
		Storage:    "bolt",
		ListenAddr: ":8080",
		APIBaseURL: "http://localhost:8080",
		Log:        LogConfig{Level: "info", Format: "text"},
		Theme:      ThemeConfig{Mode: "dark", Accent: "205", Palette: "classic"},
		Board: BoardConfig{
			Layout:      "month",
			Shape:       "rounded",
			CelebrateMS: 1200,
			Hover:       true,
		},
		Nudge: NudgeConfig{From: "streaks@resend.dev", ThresholdHours: 4},
	}
}

// Load reads the file named by STREAKS_CONFIG, or config.yaml when unset or empty,
// on top of Default and then applies environment overrides. A missing
// config.yaml is fine; a missing STREAKS_CONFIG file is an error.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("STREAKS_CONFIG")
	if path == "" {
		path, explicit = defaultPath, false
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.DBPath = getenv("STREAKS_DB_PATH", cfg.DBPath)
	cfg.Storage = getenv("STREAKS_STORAGE", cfg.Storage)
	cfg.APIBaseURL = getenv("STREAKS_API_BASE", cfg.APIBaseURL)
	cfg.ListenAddr = getenv("STREAKS_LISTEN_ADDR", cfg.ListenAddr)
	cfg.Nudge.ResendAPIKey = getenv("STREAKS_RESEND_API_KEY", cfg.Nudge.ResendAPIKey)
	cfg.Nudge.Email = getenv("STREAKS_NOTIFY_EMAIL", cfg.Nudge.Email)
	if v := os.Getenv("STREAKS_NUDGE_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("STREAKS_NUDGE_THRESHOLD must be a valid integer: %v", err)
		}
		cfg.Nudge.ThresholdHours = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case "bolt", "sqlite", "memory":
	default:
		errs = append(errs, fmt.Errorf("storage: unknown backend %q", c.Storage))
	}
	if c.Storage != "memory" && c.DBPath == "" {
		errs = append(errs, fmt.Errorf("db_path: required for %s storage", c.Storage))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	switch strings.ToLower(c.Theme.Mode) {
	case "", "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("theme.mode: unknown mode %q", c.Theme.Mode))
	}
	switch strings.ToLower(c.Theme.Palette) {
	case "", "classic", "ocean", "forest", "sunset", "mono":
	default:
		errs = append(errs, fmt.Errorf("theme.palette: unknown palette %q", c.Theme.Palette))
	}
	if !streak.Layout(c.Board.Layout).IsValid() {
		errs = append(errs, fmt.Errorf("board.layout: unknown layout %q", c.Board.Layout))
	}
	if !streak.Shape(c.Board.Shape).IsValid() {
		errs = append(errs, fmt.Errorf("board.shape: unknown shape %q", c.Board.Shape))
	}
	if c.Board.CelebrateMS < 0 {
		errs = append(errs, errors.New("board.celebrate_ms: must not be negative"))
	}
	if c.Nudge.ThresholdHours < 0 || c.Nudge.ThresholdHours > 24 {
		errs = append(errs, errors.New("nudge.threshold_hours: must be 0-24"))
	}
	return errors.Join(errs...)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
