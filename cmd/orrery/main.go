package main

import (
	"fmt"
	"os"

	"orrery/internal/config"
	"orrery/internal/game"
	"orrery/internal/orbit"
	"orrery/internal/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

const speedUpdateBuffer = 16

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"renderer":    "renderer",
	"seed":        "seed",
	"time-scaled": "animation.time_scaled",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "orrery:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "orrery",
		Short: "Animated solar system in a window or a terminal",
		Long: `orrery draws the sun, eight planets on circular orbits, their orbit
indicators, a ring around Saturn and a star field. Each planet's angular
speed can be changed live with sliders (window) or keys (terminal), or by
editing the config file while it runs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}
			return run(loader, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (toml, yaml or json)")
	cmd.Flags().String("renderer", config.RendererWindow, "renderer: window or terminal")
	cmd.Flags().Int64("seed", 0, "star field seed, 0 picks one from the clock")
	cmd.Flags().Bool("time-scaled", false, "advance by elapsed time instead of one tick per frame")
	return cmd
}

// loadConfig binds the flags into viper so they win over the file and the
// environment, then loads.
func loadConfig(cmd *cobra.Command, path string) (*config.Loader, *config.Config, error) {
	loader := config.NewLoader(path)
	for name, key := range flagKeys {
		if err := loader.Viper().BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, nil, fmt.Errorf("bind --%s: %w", name, err)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return loader, cfg, nil
}

func run(loader *config.Loader, cfg *config.Config) error {
	ctrl := orbit.NewController()
	if err := ctrl.Init(cfg.BodySpecs(), cfg.BuildOptions()); err != nil {
		return err
	}
	defer ctrl.Shutdown()

	updates := make(chan config.SpeedUpdate, speedUpdateBuffer)
	loader.Watch(updates)

	switch cfg.Renderer {
	case config.RendererTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		t, err := tui.New(screen, cfg, ctrl, updates)
		if err != nil {
			screen.Fini()
			return err
		}
		return t.Run()

	default:
		g, err := game.New(cfg, ctrl, updates)
		if err != nil {
			return err
		}
		return g.Run()
	}
}
