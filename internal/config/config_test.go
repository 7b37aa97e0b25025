package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "config.json", `{
		"provider": "openai",
		"output": "./site",
		"github_owner": "jkoster",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "./site", cfg.Output)
	assert.Equal(t, "jkoster", cfg.GitHubOwner)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTemp(t, "bad.json", "{not json")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	resume := writeTemp(t, "resume.txt", "resume text")

	cfg := &Config{Provider: "gemini", Resume: resume}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Provider: "cohere"}
	assert.Error(t, cfg.Validate(), "unknown provider rejected")

	cfg = &Config{Resume: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, cfg.Validate(), "missing resume file rejected")

	cfg = &Config{}
	assert.NoError(t, cfg.Validate(), "empty config is valid")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Provider: "openai"}
	defaults := Config{Provider: "gemini", Output: "./site", Verbose: true}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "openai", merged.Provider, "explicit value wins")
	assert.Equal(t, "./site", merged.Output, "empty value filled")
	assert.True(t, merged.Verbose)
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("GEMINI_API_KEY", "env-gemini")

	cfg := &Config{Provider: "openai"}
	assert.Equal(t, "env-openai", cfg.APIKeyFromEnv())

	cfg = &Config{}
	assert.Equal(t, "env-gemini", cfg.APIKeyFromEnv(), "gemini is the default provider")

	cfg = &Config{APIKey: "explicit"}
	assert.Equal(t, "explicit", cfg.APIKeyFromEnv())
}
