package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "panzoom",
	Short: "panzoom - movement bounds for pan/zoom/rotate views",
	Long: `panzoom computes the legal range of translation for content shown through
a pan, zoom and rotate transform inside a viewport.

Examples:
  panzoom bounds scenes.sexp          # Evaluate the scenes in a file
  panzoom scene check scenes.sexp     # Check scene file syntax
  panzoom config init                 # Write default viewer settings
  panzoom view --config settings.yaml # Launch the interactive viewer`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger returns the logger handed to library code: stderr when verbose,
// otherwise discarded.
func newLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.Ltime)
	}
	return log.New(io.Discard, "", 0)
}
