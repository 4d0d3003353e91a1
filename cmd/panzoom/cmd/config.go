package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/panzoom/pkg/settings"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Viewer settings file operations",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default settings file",
	Long: `Write default viewer settings as YAML. Without a path the platform
settings location is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the effective settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false,
		"overwrite an existing file")
}

// defaultViewerSettings are written by config init and used by view when no
// content size is configured.
func defaultViewerSettings() *settings.Settings {
	return settings.Default().SetViewport(800, 600).SetContent(1600, 1000)
}

func configPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	path, err := settings.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve settings path: %w", err)
	}
	return path, nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := settings.Save(path, defaultViewerSettings()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}

	s, err := settings.Load(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", path)
	_, err = out.Write(data)
	return err
}
