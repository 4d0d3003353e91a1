package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Common errors
var (
	ErrInvalidSize = errors.New("invalid size")
	ErrInvalidFit  = errors.New("invalid fit method")
	ErrInvalidZoom = errors.New("invalid zoom limits")
)

// ConfigError represents a configuration error with context.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DefaultConfigPath returns the platform settings file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var configDir string
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: %APPDATA%\PanZoom
		configDir = filepath.Join(appData, "PanZoom")
	} else {
		// Linux/macOS: ~/.config/panzoom
		configDir = filepath.Join(homeDir, ".config", "panzoom")
	}
	return filepath.Join(configDir, "settings.yaml"), nil
}

// Parse decodes YAML settings on top of Default and validates them.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, &ConfigError{Message: "malformed yaml", Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a settings file. A missing file yields Default.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes settings as YAML, creating the parent directory.
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
