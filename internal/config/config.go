// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config is the CLI configuration, loadable from a JSON file. Every
// field is optional; missing values fall back to defaults or CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty" validate:"omitempty,file"` // path to resume text file
	Output string `json:"output,omitempty"`                           // directory generated files are written to

	// Model access
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai anthropic"`
	APIKey   string `json:"api_key,omitempty"`

	// Publishing
	GitHubOwner  string `json:"github_owner,omitempty"`
	GitHubRepo   string `json:"github_repo,omitempty"`
	GitHubBranch string `json:"github_branch,omitempty"`
	GitHubToken  string `json:"github_token,omitempty"`

	// Behavior
	UseBrowser  bool   `json:"use_browser,omitempty"` // headless browser fallback for profile fetches
	Verbose     bool   `json:"verbose,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,uri"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field formats and that referenced files exist.
// Required fields are enforced later, after flags are merged in.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a copy of c with empty fields filled from
// defaults. Used to let a config file provide CLI flag defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GitHubOwner == "" {
		result.GitHubOwner = defaults.GitHubOwner
	}
	if result.GitHubRepo == "" {
		result.GitHubRepo = defaults.GitHubRepo
	}
	if result.GitHubBranch == "" {
		result.GitHubBranch = defaults.GitHubBranch
	}
	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// APIKeyFromEnv resolves the model API key for a provider when the
// config carries none.
func (c *Config) APIKeyFromEnv() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
