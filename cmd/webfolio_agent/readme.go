package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/readme"
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Generate a README for the website repository",
	Long:  "Readme generates a README.md describing the person and their site, and can render an HTML preview of it.",
	RunE:  runReadme,
}

var (
	readmeResume   string
	readmeOutput   string
	readmeProvider string
	readmeConfig   string
	readmePreview  bool
)

func init() {
	readmeCmd.Flags().StringVarP(&readmeResume, "resume", "r", "", "Path to resume text file")
	readmeCmd.Flags().StringVarP(&readmeOutput, "out", "o", "./site", "Directory to write README.md to")
	readmeCmd.Flags().StringVar(&readmeProvider, "provider", "", "Model provider: gemini, openai, or anthropic (default gemini)")
	readmeCmd.Flags().StringVarP(&readmeConfig, "config", "c", "", "Path to JSON config file")
	readmeCmd.Flags().BoolVar(&readmePreview, "preview", false, "Also write an HTML preview next to the README")

	rootCmd.AddCommand(readmeCmd)
}

func runReadme(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{
		Resume:   readmeResume,
		Output:   readmeOutput,
		Provider: readmeProvider,
	}, readmeConfig)
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

	state, err := openSession(ctx, db, "")
	if err != nil {
		return err
	}
	if err := ingestResumeFile(ctx, a, state, cfg.Resume); err != nil {
		return err
	}

	result, err := a.HandleInstruction(ctx, state, "create the readme")
	if err != nil {
		return err
	}
	fmt.Println(result)
	if state.Readme == "" {
		// the agent stopped to ask for missing details
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return err
	}
	path := filepath.Join(cfg.Output, "README.md")
	if err := os.WriteFile(path, []byte(state.Readme), 0644); err != nil {
		return err
	}
	fmt.Printf("README written to %s\n", path)

	if readmePreview {
		html, err := readme.Preview(state)
		if err != nil {
			return err
		}
		previewPath := filepath.Join(cfg.Output, "README.html")
		if err := os.WriteFile(previewPath, []byte(html), 0644); err != nil {
			return err
		}
		fmt.Printf("Preview written to %s\n", previewPath)
	}
	return nil
}
