package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/observability"
	"github.com/jkoster/webfolio/internal/publish"
	"github.com/jkoster/webfolio/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a complete website from a resume",
	Long:  "Generate parses a resume, extracts the personal details and sections, and builds the full site: home page, one page per section, navigation, and shared assets.",
	RunE:  runGenerate,
}

var (
	generateResume   string
	generateOutput   string
	generateProvider string
	generateConfig   string
	generateDBURL    string
	generateVerbose  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateResume, "resume", "r", "", "Path to resume text file")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "./site", "Directory to write the generated site to")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "Model provider: gemini, openai, or anthropic (default gemini)")
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Path to JSON config file")
	generateCmd.Flags().StringVar(&generateDBURL, "db-url", "", "PostgreSQL URL for session persistence (overrides DATABASE_URL)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print extracted facts and generated files")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{
		Resume:      generateResume,
		Output:      generateOutput,
		Provider:    generateProvider,
		DatabaseURL: databaseURL(generateDBURL),
		Verbose:     generateVerbose,
	}, generateConfig)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	a, db, err := newAgent(ctx, client, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	state := session.New()
	if err := ingestResumeFile(ctx, a, state, cfg.Resume); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintFacts(state.Facts.Facts)
		printer.PrintSections(state.Facts.Sections)
	}

	result, err := a.BuildSite(ctx, state)
	if err != nil {
		return err
	}
	fmt.Println(result)

	files := state.FileMap()
	if len(files) == 0 {
		// the build stopped at a clarification question
		return nil
	}

	dest := &publish.DirPublisher{Root: cfg.Output}
	if err := dest.Publish(ctx, files, "generate site"); err != nil {
		return err
	}
	fmt.Printf("Site written to %s (session %s)\n", cfg.Output, state.ID)

	if cfg.Verbose {
		printer.PrintFiles(state)
	}
	return saveIfPersistent(ctx, db, state)
}

// databaseURL prefers the flag and falls back to DATABASE_URL.
func databaseURL(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("DATABASE_URL")
}
