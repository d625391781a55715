package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then DEEP_ARCHIVE_* environment overrides. The result is
// validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.S3Mirror.Region == "" {
		cfg.S3Mirror.Region = DefaultRegion
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile returns the config file in dir, or "" when there is none.
// Only the invocation directory is consulted; the working directories are
// relative to it, so a file from a parent directory would be misleading.
func FindConfigFile(dir string) (string, error) {
	path := filepath.Join(dir, DefaultConfigFilename)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return path, nil
}

// Save writes a configuration to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExpandPath resolves a leading ~ in a path given outside the config file,
// such as a command-line flag.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", path, err)
	}
	return expanded, nil
}

// expandPaths resolves a leading ~ in every configured path.
func (c *Config) expandPaths() error {
	var err error
	for i, dir := range c.Directories {
		if c.Directories[i], err = homedir.Expand(dir); err != nil {
			return fmt.Errorf("failed to expand directory %q: %w", dir, err)
		}
	}
	for i, a := range c.Artifacts {
		if c.Artifacts[i].Destination, err = homedir.Expand(a.Destination); err != nil {
			return fmt.Errorf("failed to expand destination of artifact %s: %w", a.Name, err)
		}
	}
	if c.EnvFile, err = homedir.Expand(c.EnvFile); err != nil {
		return fmt.Errorf("failed to expand env_file: %w", err)
	}
	if c.MetricsFile, err = homedir.Expand(c.MetricsFile); err != nil {
		return fmt.Errorf("failed to expand metrics_file: %w", err)
	}
	return nil
}
