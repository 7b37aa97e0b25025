package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/ghprofile"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username-or-url>",
	Short: "Review a GitHub profile",
	Long:  "Profile fetches a live GitHub profile page and suggests improvements. With --resume it also proposes a bio grounded in the resume.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

var (
	profileResume     string
	profileProvider   string
	profileConfig     string
	profileUseBrowser bool
)

func init() {
	profileCmd.Flags().StringVarP(&profileResume, "resume", "r", "", "Path to resume text file (enables bio suggestions)")
	profileCmd.Flags().StringVar(&profileProvider, "provider", "", "Model provider: gemini, openai, or anthropic (default gemini)")
	profileCmd.Flags().StringVarP(&profileConfig, "config", "c", "", "Path to JSON config file")
	profileCmd.Flags().BoolVar(&profileUseBrowser, "use-browser", false, "Render the profile in a headless browser when static HTML is too thin")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		Resume:     profileResume,
		Provider:   profileProvider,
		UseBrowser: profileUseBrowser,
	}, profileConfig)
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
	if cfg.Resume != "" {
		if err := ingestResumeFile(ctx, a, state, cfg.Resume); err != nil {
			return err
		}
	}

	optimizer := &ghprofile.Optimizer{
		Runner:         &stage.Runner{Client: client},
		DisableBrowser: !cfg.UseBrowser,
	}
	review, err := optimizer.Review(ctx, state, args[0])
	if err != nil {
		return err
	}
	fmt.Println(review)

	if state.Facts.Facts.Complete() {
		bio, err := optimizer.SuggestBio(ctx, state)
		if err != nil {
			return err
		}
		fmt.Printf("\nSuggested bio:\n%s\n", bio)
	}
	return nil
}
