package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/panzoom/pkg/controller"
	"github.com/OpenTraceLab/panzoom/pkg/scene"
)

var (
	sceneName string
	showZoom  bool
)

var boundsCmd = &cobra.Command{
	Use:   "bounds <scene-file>",
	Short: "Evaluate movement bounds for the scenes in a file",
	Long: `Evaluate every scene in an s-expression scene file and print its movement
bounds, external bounds and the restricted position of each probe.

Examples:
  panzoom bounds scenes.sexp
  panzoom bounds --scene rotated --zoom scenes.sexp`,
	Args: cobra.ExactArgs(1),
	RunE: runBounds,
}

func init() {
	rootCmd.AddCommand(boundsCmd)

	boundsCmd.Flags().StringVarP(&sceneName, "scene", "s", "",
		"only evaluate the scene with this name")
	boundsCmd.Flags().BoolVarP(&showZoom, "zoom", "z", false,
		"show fit, minimum and maximum zoom")
}

func runBounds(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()
	logger := newLogger()

	scenes, err := scene.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("failed to load scenes: %w", err)
	}
	logger.Printf("loaded %d scene(s) from %s", len(scenes), filename)

	matched := 0
	for _, sc := range scenes {
		if sceneName != "" && sc.Name != sceneName {
			continue
		}
		matched++
		printResult(out, sc, sc.Evaluate())

		if showZoom {
			ctrl := controller.New(sc.Settings, logger)
			fmt.Fprintf(out, "  Zoom:     fit=%.4g min=%.4g max=%.4g\n",
				ctrl.FitZoom(sc.State), ctrl.MinZoom(sc.State), ctrl.MaxZoom(sc.State))
		}
		fmt.Fprintln(out)
	}

	if sceneName != "" && matched == 0 {
		return fmt.Errorf("no scene named %q in %s", sceneName, filename)
	}
	return nil
}

func printResult(out io.Writer, sc *scene.Scene, res scene.Result) {
	cfg := sc.Settings
	name := res.Scene
	if name == "" {
		name = "<unnamed>"
	}

	fmt.Fprintf(out, "Scene: %s\n", name)
	fmt.Fprintf(out, "  Viewport: %v  Area: %v  Content: %v\n", cfg.ViewportSize(), res.Area, cfg.ContentSize())
	fmt.Fprintf(out, "  Gravity:  %v  Fit: %v\n", cfg.Gravity, cfg.Fit)
	fmt.Fprintf(out, "  State:    %v\n", res.State)
	fmt.Fprintf(out, "  Bounds:   %v\n", res.Bounds)
	fmt.Fprintf(out, "  External: %v\n", res.External)

	var locked []string
	if res.Bounds.LockedX() {
		locked = append(locked, "x")
	}
	if res.Bounds.LockedY() {
		locked = append(locked, "y")
	}
	if len(locked) > 0 {
		fmt.Fprintf(out, "  Locked:   %s\n", strings.Join(locked, ", "))
	}

	for _, p := range res.Probes {
		where := "outside"
		if p.Inside {
			where = "inside"
		}
		fmt.Fprintf(out, "  Probe (%g, %g): %s -> (%g, %g), overscroll (%g, %g)\n",
			p.Point.X, p.Point.Y, where,
			p.Restricted.X, p.Restricted.Y,
			p.Overscrolled.X, p.Overscrolled.Y)
	}
}
