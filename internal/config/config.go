package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"photo-viewer/internal/logger"
)

const (
	StaleDiscard = "discard"
	StaleApply   = "apply"

	EngineImaging = "imaging"
	EngineOpenCV  = "opencv"

	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Window struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
	Render struct {
		PreviewMaxEdge int    `yaml:"preview_max_edge"`
		ColorEngine    string `yaml:"color_engine"`
	} `yaml:"render"`
	Loader struct {
		StaleCompletions string        `yaml:"stale_completions"`
		HTTPTimeout      time.Duration `yaml:"http_timeout"`
	} `yaml:"loader"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = FormatConsole
	cfg.Window.Width = 551
	cfg.Window.Height = 400
	cfg.Render.PreviewMaxEdge = 2048
	cfg.Render.ColorEngine = EngineImaging
	cfg.Loader.StaleCompletions = StaleDiscard
	cfg.Loader.HTTPTimeout = 30 * time.Second
	return cfg
}

// DefaultPath is config.yaml under the user config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "photo-viewer", "config.yaml")
}

// Load reads filename on top of the defaults. A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	return cfg, nil
}

// ApplyEnv overrides values from LOG_LEVEL and PHOTO_VIEWER_STALE
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	} else if getenv("DEBUG") == "1" {
		c.Log.Level = "debug"
	}
	if v := getenv("PHOTO_VIEWER_STALE"); v != "" {
		c.Loader.StaleCompletions = v
	}
}

func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	switch c.Render.ColorEngine {
	case EngineImaging, EngineOpenCV:
	default:
		return fmt.Errorf("invalid color engine %q", c.Render.ColorEngine)
	}
	switch c.Loader.StaleCompletions {
	case StaleDiscard, StaleApply:
	default:
		return fmt.Errorf("invalid stale completion policy %q", c.Loader.StaleCompletions)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %.0fx%.0f", c.Window.Width, c.Window.Height)
	}
	if c.Render.PreviewMaxEdge < 64 {
		return fmt.Errorf("preview_max_edge must be at least 64, got %d", c.Render.PreviewMaxEdge)
	}
	if c.Loader.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() logger.LogLevel {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
