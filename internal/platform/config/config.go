package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL   = "http://localhost:8000"
	DefaultHTTPTimeout = 30 * time.Second
)

type Config struct {
	ServerURL   string
	DataDir     string
	DBPath      string
	HTTPTimeout time.Duration
}

// fileConfig is the optional on-disk config at <data>/config.yaml.
// Values set on the command line win over file values.
type fileConfig struct {
	ServerURL          string `yaml:"server_url"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
}

func New(serverURL, dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".classmood")
	}
	cfg := Config{
		ServerURL:   serverURL,
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "classmood.db"),
		HTTPTimeout: DefaultHTTPTimeout,
	}
	if err := cfg.applyFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return Config{}, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ServerURL == "" {
		c.ServerURL = fc.ServerURL
	}
	if fc.HTTPTimeoutSeconds > 0 {
		c.HTTPTimeout = time.Duration(fc.HTTPTimeoutSeconds) * time.Second
	}
	return nil
}
