package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/surfaceview/internal/config"
	"github.com/recera/surfaceview/pkg/surface"
)

// globalFlags are shared by every subcommand. They override the config file
// and the environment.
type globalFlags struct {
	configPath string
	envFile    string
	endpoint   string
	mode       string
	surface    string
	resolution int
	order      string
	colormap   string
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", config.FileName, "Path to the configuration file")
	pf.StringVar(&f.envFile, "env-file", ".env", "Environment file loaded before the configuration")
	pf.StringVar(&f.endpoint, "endpoint", "", "Generation service base URL")
	pf.StringVar(&f.mode, "mode", "", "Integration mode: json or legacy")
	pf.StringVar(&f.surface, "type", "", "Surface type (chen-gackstatter, enneper)")
	pf.IntVar(&f.resolution, "resolution", 0, "Grid resolution")
	pf.StringVar(&f.order, "order", "", "Enneper order")
	pf.StringVar(&f.colormap, "colormap", "", "Colormap name or monochrome")
}

// load resolves the configuration: defaults, file, environment, then flags.
func (f *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnv(f.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.configPath, err)
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	f.apply(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// apply copies explicitly set flags over cfg.
func (f *globalFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("endpoint") {
		cfg.Endpoint = f.endpoint
	}
	if changed("mode") {
		cfg.Mode = f.mode
	}
	if changed("type") {
		cfg.View.SurfaceType = surface.ParseType(f.surface)
	}
	if changed("resolution") {
		cfg.View.Resolution = f.resolution
	}
	if changed("order") {
		cfg.View.Order = surface.ParseOrder(f.order)
	}
	if changed("colormap") {
		cfg.View.Colormap = f.colormap
	}
}
