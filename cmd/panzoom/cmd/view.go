package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/panzoom/internal/ui"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
)

var viewConfig string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Launch the interactive bounds viewer",
	Long: `Opens a Gio window showing content under a pan/zoom/rotate transform
together with its movement bounds.

Controls:
  Drag            - Pan (overscroll while dragging, snaps back on release)
  Scroll Wheel    - Zoom about the pointer
  + / -           - Zoom about the center
  R               - Rotate 15°
  F               - Toggle fit inside/outside
  Space           - Reset to fit zoom
  Q / Escape      - Quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVarP(&viewConfig, "config", "c", "",
		"settings file (default is the platform settings location)")
}

func runView(cmd *cobra.Command, args []string) error {
	path := viewConfig
	if path == "" {
		p, err := settings.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to resolve settings path: %w", err)
		}
		path = p
	}

	cfg, err := settings.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !cfg.HasContent() {
		def := defaultViewerSettings()
		cfg.SetContent(def.Content.Width, def.Content.Height)
	}
	if verbose {
		fmt.Printf("Settings: %s\n", path)
		fmt.Printf("  Content: %v  Gravity: %v  Fit: %v\n", cfg.ContentSize(), cfg.Gravity, cfg.Fit)
	}

	ui.Main(cfg, ui.Options{ConfigPath: path, Verbose: verbose})
	return nil
}
