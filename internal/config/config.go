// Package config loads the application configuration from YAML, layering
// file values over built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/mpetrov/lifeline/internal/presentation/layout"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Log      LogConfig     `yaml:"log"`
	Timezone string        `yaml:"timezone"`
	Layout   layout.Config `yaml:"layout"`
	Viewport struct {
		Height float64 `yaml:"height"`
		Width  float64 `yaml:"width"`
	} `yaml:"viewport"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	cfg := Config{
		Server: ServerConfig{
			Addr:   ":8080",
			DBPath: "lifeline.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Timezone: "Local",
		Layout:   layout.DefaultConfig(),
	}
	cfg.Viewport.Height = 800
	cfg.Viewport.Width = 1440
	return cfg
}

// Load reads a YAML config file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
