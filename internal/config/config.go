// Package config loads vlanpath settings from YAML.
//
// Config file locations (priority order):
//  1. $VLANPATH_CONFIG
//  2. ./vlanpath.yaml
//  3. ~/.config/vlanpath/config.yaml
//
// Command line flags override anything set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath = "VLANPATH_CONFIG"

	defaultFallbackPod = "pod-2"
	defaultLogLevel    = "info"
	defaultWebAddr     = "localhost:8080"
	defaultOwner       = "netops-tools"
	defaultRepository  = "vlanpath"
)

// Config is the on-disk configuration.
type Config struct {
	// Pod used in the report when no attachment names one for a path.
	FallbackPod string `yaml:"fallback_pod"`
	// EPG written to the CSV. Empty means resolve from the attachments.
	EPG      string       `yaml:"epg,omitempty"`
	LogLevel string       `yaml:"log_level"`
	Web      WebConfig    `yaml:"web"`
	Update   UpdateConfig `yaml:"update"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

// UpdateConfig names the GitHub repository checked by --update.
type UpdateConfig struct {
	Owner      string `yaml:"owner"`
	Repository string `yaml:"repository"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load finds and loads the config file, or returns defaults if none found.
// The returned path is empty when defaults are used.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, path, fmt.Errorf("expand config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, expanded, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, expanded, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, expanded, nil
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func searchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		if expanded, err := homedir.Expand(p); err == nil {
			paths = append(paths, expanded)
		}
	}
	paths = append(paths, "vlanpath.yaml")
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vlanpath", "config.yaml"))
	}
	return paths
}

// Save writes config to the specified path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyDefaults() {
	if c.FallbackPod == "" {
		c.FallbackPod = defaultFallbackPod
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Web.Addr == "" {
		c.Web.Addr = defaultWebAddr
	}
	if c.Update.Owner == "" {
		c.Update.Owner = defaultOwner
	}
	if c.Update.Repository == "" {
		c.Update.Repository = defaultRepository
	}
}
