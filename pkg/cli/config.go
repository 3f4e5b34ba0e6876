// Package cli provides CLI-specific logic including configuration loading.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the .changelens.yml configuration file.
type Config struct {
	Version  string         `yaml:"version"`
	GitHub   GitHubConfig   `yaml:"github"`
	Limits   LimitsConfig   `yaml:"limits"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
}

// GitHubConfig identifies the repository to analyze. The token itself is
// never stored in the file; TokenEnv names the environment variable that
// holds it.
type GitHubConfig struct {
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	Branch   string `yaml:"branch"`
	TokenEnv string `yaml:"token_env"`
	BaseURL  string `yaml:"base_url"`
}

// LimitsConfig bounds how much a single query analyzes.
type LimitsConfig struct {
	MaxFiles   int `yaml:"max_files"`
	MaxCommits int `yaml:"max_commits"`
	MaxPRs     int `yaml:"max_prs"`
}

// AnalysisConfig tunes the engine.
type AnalysisConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// OutputConfig controls report output settings.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// LoadConfig reads and parses a .changelens.yml configuration file.
// If path is empty, it looks for .changelens.yml in the current directory.
// If the default config file is not found, sensible defaults are returned.
// If an explicitly specified config file is not found, an error is returned.
//
// A .env file in the current directory is loaded first, so token variables
// can live there during local development.
func LoadConfig(path string) (*Config, error) {
	// Missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	useDefault := path == ""
	if useDefault {
		path = ".changelens.yml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && useDefault {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cli: reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults matching the
// documented .changelens.yml schema.
func DefaultConfig() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// Token resolves the GitHub token from the configured environment variable.
func (c *Config) Token() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.GitHub.Branch == "" {
		cfg.GitHub.Branch = "main"
	}
	if cfg.GitHub.TokenEnv == "" {
		cfg.GitHub.TokenEnv = "GITHUB_TOKEN"
	}
	if cfg.Limits.MaxFiles == 0 {
		cfg.Limits.MaxFiles = 10
	}
	if cfg.Limits.MaxCommits == 0 {
		cfg.Limits.MaxCommits = 5
	}
	if cfg.Limits.MaxPRs == 0 {
		cfg.Limits.MaxPRs = 5
	}
	if cfg.Analysis.Concurrency == 0 {
		cfg.Analysis.Concurrency = 4
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "terminal"
	}
}
