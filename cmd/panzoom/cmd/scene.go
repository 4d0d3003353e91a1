package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/panzoom/pkg/scene"
)

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Scene file operations",
	Long:  `Commands for working with s-expression scene files`,
}

var sceneCheckCmd = &cobra.Command{
	Use:   "check <scene-file>...",
	Short: "Check the syntax of scene files",
	Long: `Check that scene files are well-formed s-expressions and that every scene
in them decodes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSceneCheck,
}

func init() {
	rootCmd.AddCommand(sceneCmd)
	sceneCmd.AddCommand(sceneCheckCmd)
}

func runSceneCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, filename := range args {
		if err := checkSceneFile(filename); err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", filename, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", filename)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
	}
	return nil
}

func checkSceneFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := scene.Check(f)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %d top-level form(s)\n", filename, n)
	}

	_, err = scene.ParseFile(filename)
	return err
}
