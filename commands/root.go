// Package commands wires the CLI: serve runs the HTTP server, render writes
// the timeline as SVG, inspect prints the derived structure, seed fills a
// database with sample data.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpetrov/lifeline/internal/config"
	"github.com/mpetrov/lifeline/internal/util"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	timezone   string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "lifeline",
		Short: "Life timeline server and renderer",
		Long: `lifeline stores life chapters and events in SQLite, derives a
timeline with branches from them, and serves or renders the result.

Examples:
  lifeline serve                          # Serve the API on :8080
  lifeline serve --addr :9000 --db my.db  # Custom address and database
  lifeline render -o timeline.svg        # Render the timeline as SVG
  lifeline inspect --output json         # Dump the derived timeline
  lifeline seed                          # Load sample chapters and events`,
	}
)

const defaultLogFile = "~/.lifeline/logs/app.log"

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone setting (e.g., Europe/Sofia, UTC; overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// setup loads the config, applies flag overrides, and initializes logging
// and the time provider. Every subcommand starts here.
func setup() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.Server.DBPath = dbPath
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}

	logLevel := cfg.Log.Level
	if debug {
		logLevel = "debug"
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = defaultLogFile
	}
	logFile = expandPath(logFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return cfg, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
