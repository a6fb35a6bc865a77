// Package config loads application settings from the environment. Flags in
// cmd/ may override individual fields after loading.
package config

import (
	"fmt"

	"chromafix/internal/daltonize"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config collects every tunable of the live application.
type Config struct {
	// CameraID selects the capture device when VideoPath is empty.
	CameraID int `env:"CHROMAFIX_CAMERA" envDefault:"0"`
	Width    int `env:"CHROMAFIX_WIDTH" envDefault:"640"`
	Height   int `env:"CHROMAFIX_HEIGHT" envDefault:"480"`
	FPS      int `env:"CHROMAFIX_FPS" envDefault:"30"`

	// VideoPath switches the frame source from the camera to a video file.
	VideoPath string `env:"CHROMAFIX_VIDEO"`

	// ModelPath enables the region-gated variant; empty corrects the full
	// frame.
	ModelPath   string `env:"CHROMAFIX_MODEL"`
	DetectEvery int    `env:"CHROMAFIX_DETECT_EVERY" envDefault:"5"`

	// Mode is the starting correction mode.
	Mode string `env:"CHROMAFIX_MODE" envDefault:"normal"`

	LogLevel string `env:"CHROMAFIX_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid capture size %dx%d", c.Width, c.Height)
	}
	if c.DetectEvery < 1 {
		return fmt.Errorf("detect every must be >= 1, got %d", c.DetectEvery)
	}
	if _, err := c.StartMode(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// StartMode resolves the configured mode name.
func (c Config) StartMode() (daltonize.Deficiency, error) {
	return daltonize.ParseDeficiency(c.Mode)
}

// ZerologLevel resolves the configured log level. Validate has already
// checked it parses.
func (c Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
