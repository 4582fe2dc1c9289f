package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultType = "address"

	configFile = "config.json"
)

// Config holds the persisted CLI preferences.
type Config struct {
	// DefaultType is assigned to parameters added without an explicit type.
	DefaultType string `json:"default_type"`
	// TemplateDir is where `template save` and `template load` resolve
	// relative file names. Empty means the current directory.
	TemplateDir string `json:"template_dir,omitempty"`

	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to ~/.callforge.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".callforge")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := &Config{DefaultType: defaultType, configDir: dir}

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.DefaultType == "" {
		cfg.DefaultType = defaultType
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// TemplatePath resolves a template file name against TemplateDir. Absolute
// paths pass through unchanged.
func (c *Config) TemplatePath(name string) string {
	if filepath.IsAbs(name) || c.TemplateDir == "" {
		return name
	}
	return filepath.Join(c.TemplateDir, name)
}
