// Package config loads surfaceview.yaml and the environment overrides that
// sit on top of it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/surface"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "surfaceview.yaml"

// Environment variables that override file values.
const (
	EnvEndpoint = "SURFACEVIEW_ENDPOINT"
	EnvMode     = "SURFACEVIEW_MODE"
	EnvTimeout  = "SURFACEVIEW_TIMEOUT"
)

// Config represents the surfaceview.yaml configuration
type Config struct {
	// Base URL of the generation service
	Endpoint string `yaml:"endpoint"`

	// Integration mode: json or legacy
	Mode string `yaml:"mode"`

	// Per-request timeout; zero waits indefinitely
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Initial view state
	View surface.ViewState `yaml:"view"`

	Render  RenderConfig  `yaml:"render"`
	Preview PreviewConfig `yaml:"preview"`
}

// RenderConfig controls where rendered pages are written.
type RenderConfig struct {
	OutputDir string `yaml:"outputDir"`
}

// PreviewConfig contains preview server configuration
type PreviewConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr is the preview server listen address.
func (p PreviewConfig) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Load loads configuration from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes config to path as YAML.
func Save(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint: "http://localhost:5000",
		Mode:     string(controller.ModeJSON),
		View:     surface.DefaultViewState(),
		Render: RenderConfig{
			OutputDir: ".",
		},
		Preview: PreviewConfig{
			Host: "localhost",
			Port: 5173,
		},
	}
}

// applyDefaults fills zero values from DefaultConfig
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Endpoint == "" {
		config.Endpoint = defaults.Endpoint
	}
	if config.Mode == "" {
		config.Mode = defaults.Mode
	}

	if config.View.SurfaceType == "" {
		config.View.SurfaceType = defaults.View.SurfaceType
	}
	if config.View.Resolution == 0 {
		config.View.Resolution = defaults.View.Resolution
	}
	if config.View.Order == 0 {
		config.View.Order = defaults.View.Order
	}
	if config.View.Colormap == "" {
		config.View.Colormap = defaults.View.Colormap
	}

	if config.Render.OutputDir == "" {
		config.Render.OutputDir = defaults.Render.OutputDir
	}
	if config.Preview.Host == "" {
		config.Preview.Host = defaults.Preview.Host
	}
	if config.Preview.Port == 0 {
		config.Preview.Port = defaults.Preview.Port
	}
}

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped; variables already set are kept.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config fields from environment variables read by
// lookup, normally os.LookupEnv.
func ApplyEnv(config *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		config.Endpoint = v
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		config.Mode = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		config.Timeout = d
	}
	return nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if _, err := controller.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.View.Resolution <= 0 {
		return fmt.Errorf("view.resolution must be positive, got %d", c.View.Resolution)
	}
	if c.Preview.Port <= 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview.port out of range: %d", c.Preview.Port)
	}
	return nil
}

// ControllerMode returns the validated integration mode.
func (c *Config) ControllerMode() controller.Mode {
	m, err := controller.ParseMode(c.Mode)
	if err != nil {
		return controller.ModeJSON
	}
	return m
}
