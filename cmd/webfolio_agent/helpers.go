package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jkoster/webfolio/internal/agent"
	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/history"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/store"
)

// resolveConfig merges an optional config file under the given flags.
// Flag values win; the file fills the gaps.
func resolveConfig(flags config.Config, configPath string) (config.Config, error) {
	if configPath == "" {
		if err := flags.Validate(); err != nil {
			return config.Config{}, err
		}
		return flags, nil
	}

	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	merged := flags.MergeWithDefaults(*fileCfg)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// newClient builds the provider client the config names.
func newClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	apiKey := cfg.APIKeyFromEnv()
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set the provider's key environment variable or api_key in the config file)")
	}
	return llm.NewClient(ctx, llm.ConfigForProvider(llm.Provider(cfg.Provider)), apiKey)
}

// newAgent builds the agent, backing its action history with the
// database when one is configured.
func newAgent(ctx context.Context, client llm.Client, cfg config.Config) (*agent.Agent, *store.Store, error) {
	var sink history.Sink
	var db *store.Store

	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		sink = &store.HistorySink{Store: db}
	}

	a := agent.New(client, agent.Options{
		History:        sink,
		DisableBrowser: !cfg.UseBrowser,
	})
	return a, db, nil
}

// ingestResumeFile reads the resume and extracts facts into the session.
func ingestResumeFile(ctx context.Context, a *agent.Agent, state *session.State, path string) error {
	if path == "" {
		return fmt.Errorf("a resume file is required (--resume or the config file)")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	return a.IngestResume(ctx, state, string(content))
}

// saveIfPersistent writes the session to the database when one is open.
func saveIfPersistent(ctx context.Context, db *store.Store, state *session.State) error {
	if db == nil {
		return nil
	}
	return db.SaveSession(ctx, state)
}
