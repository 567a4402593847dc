// Package config loads the YAML settings shared by the viewer and the exporter.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sudorandom/protein-scenes/pkg/chart"
	"github.com/sudorandom/protein-scenes/pkg/sources"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

const DefaultLoadTimeout = 30 * time.Second

type Config struct {
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	Margin      chart.Margin     `yaml:"margin"`
	Dataset     string           `yaml:"dataset"`
	CacheDir    string           `yaml:"cache_dir"`
	Columns     sources.Columns  `yaml:"columns"`
	Thresholds  chart.Thresholds `yaml:"thresholds"`
	Transition  time.Duration    `yaml:"transition"`
	LoadTimeout time.Duration    `yaml:"load_timeout"`
	LogLevel    string           `yaml:"log_level"`
}

func Default() Config {
	l := chart.DefaultLayout()
	return Config{
		Width:       l.Width,
		Height:      l.Height,
		Margin:      l.Margin,
		Dataset:     sources.DefaultDatasetPath,
		Columns:     sources.DefaultColumns(),
		Thresholds:  chart.DefaultThresholds(),
		Transition:  chart.DefaultTransition,
		LoadTimeout: DefaultLoadTimeout,
		LogLevel:    "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
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
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	log.Debug().Str("path", path).Str("dataset", cfg.Dataset).Msg("Loaded config")
	return cfg, nil
}

// Validate rejects settings that would leave no plotting area or no usable scenes.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Layout().InnerWidth() <= 0 || c.Layout().InnerHeight() <= 0:
		return fmt.Errorf("%w: margins leave no plotting area", ErrInvalid)
	case c.Dataset == "":
		return fmt.Errorf("%w: dataset is empty", ErrInvalid)
	case c.Columns.Entity == "" || c.Columns.GDP == "" || c.Columns.Share == "":
		return fmt.Errorf("%w: entity, gdp and share columns are required", ErrInvalid)
	case c.Thresholds.HighIncome <= 0 || c.Thresholds.LowIncome <= 0:
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalid)
	case c.Transition < 0:
		return fmt.Errorf("%w: transition must not be negative", ErrInvalid)
	case c.LoadTimeout <= 0:
		return fmt.Errorf("%w: load_timeout must be positive", ErrInvalid)
	}
	return nil
}

func (c Config) Layout() chart.Layout {
	return chart.Layout{Width: c.Width, Height: c.Height, Margin: c.Margin}
}

func (c Config) ChartOptions() chart.Options {
	return chart.Options{Thresholds: c.Thresholds, Transition: c.Transition}
}
