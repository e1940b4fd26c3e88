// Package config holds all pitsweeper configuration: maze generation
// parameters, the episode step cap, persistence, and logging. Values come
// from defaults, an optional yaml file, and environment overrides, in
// that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all pitsweeper configuration.
type Config struct {
	Maze    MazeConfig    `yaml:"maze"`
	Episode EpisodeConfig `yaml:"episode"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// MazeConfig tunes random maze generation.
type MazeConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PitDensity float64 `yaml:"pit_density"`
}

// EpisodeConfig bounds a single exploration run.
type EpisodeConfig struct {
	// MaxSteps ends an episode that has not reached the goal. Must cover
	// the worst case of revisiting most of the grid.
	MaxSteps int `yaml:"max_steps"`
}

// StoreConfig configures the sqlite episode recorder.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LoggingConfig configures the categorized debug logs.
type LoggingConfig struct {
	Debug      bool            `yaml:"debug"`
	Level      string          `yaml:"level"`
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:      12,
			Height:     10,
			PitDensity: 0.12,
		},
		Episode: EpisodeConfig{
			MaxSteps: 500,
		},
		Store: StoreConfig{
			Enabled: false,
			Dir:     ".pitsweeper",
		},
		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
			Dir:   ".pitsweeper",
		},
	}
}

// Load reads a yaml config file over the defaults, then applies
// environment overrides. An empty path loads defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv maps PITSWEEPER_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("PITSWEEPER_DEBUG"); v != "" {
		c.Logging.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("PITSWEEPER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PITSWEEPER_STORE_DIR"); v != "" {
		c.Store.Dir = v
		c.Store.Enabled = true
	}
	if v := os.Getenv("PITSWEEPER_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Episode.MaxSteps = n
		}
	}
}

// Validate rejects configurations the simulator cannot honor.
func (c Config) Validate() error {
	if c.Maze.Width < 5 || c.Maze.Height < 5 {
		return fmt.Errorf("maze must be at least 5x5, got %dx%d", c.Maze.Width, c.Maze.Height)
	}
	if c.Maze.PitDensity < 0 || c.Maze.PitDensity > 0.5 {
		return fmt.Errorf("pit_density %v out of range [0, 0.5]", c.Maze.PitDensity)
	}
	if c.Episode.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.Episode.MaxSteps)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
