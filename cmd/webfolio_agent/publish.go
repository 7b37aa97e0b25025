package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a generated site to a GitHub repository",
	Long:  "Publish uploads every file in the site directory to a GitHub repository through the contents API, creating or updating files as needed.",
	RunE:  runPublish,
}

var (
	publishDir     string
	publishOwner   string
	publishRepo    string
	publishBranch  string
	publishMessage string
	publishConfig  string
	publishAppID   string
	publishAppKey  string
)

func init() {
	publishCmd.Flags().StringVarP(&publishDir, "dir", "d", "./site", "Directory containing the generated site")
	publishCmd.Flags().StringVar(&publishOwner, "owner", "", "GitHub repository owner")
	publishCmd.Flags().StringVar(&publishRepo, "repo", "", "GitHub repository name")
	publishCmd.Flags().StringVar(&publishBranch, "branch", "", "Branch to commit to (default main)")
	publishCmd.Flags().StringVarP(&publishMessage, "message", "m", "publish site", "Commit message")
	publishCmd.Flags().StringVarP(&publishConfig, "config", "c", "", "Path to JSON config file")
	publishCmd.Flags().StringVar(&publishAppID, "app-id", "", "GitHub App ID (authenticate as an App instead of a token)")
	publishCmd.Flags().StringVar(&publishAppKey, "app-key", "", "Path to the GitHub App private key PEM")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{
		Output:       publishDir,
		GitHubOwner:  publishOwner,
		GitHubRepo:   publishRepo,
		GitHubBranch: publishBranch,
	}, publishConfig)
	if err != nil {
		return err
	}
	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
		return fmt.Errorf("a repository is required (--owner and --repo, or the config file)")
	}

	token, err := publishToken(cfg)
	if err != nil {
		return err
	}

	files, err := readSiteDir(cfg.Output)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to publish in %s", cfg.Output)
	}

	dest := &publish.GitHubPublisher{
		Owner:  cfg.GitHubOwner,
		Repo:   cfg.GitHubRepo,
		Branch: cfg.GitHubBranch,
		Token:  token,
	}
	if err := dest.Publish(context.Background(), files, publishMessage); err != nil {
		return err
	}
	fmt.Printf("Published %d files to %s/%s\n", len(files), cfg.GitHubOwner, cfg.GitHubRepo)
	return nil
}

// publishToken picks the credential: a GitHub App key pair when given,
// otherwise a personal access token from the config or environment.
func publishToken(cfg config.Config) (string, error) {
	if publishAppID != "" {
		pemBytes, err := os.ReadFile(publishAppKey)
		if err != nil {
			return "", fmt.Errorf("failed to read App private key: %w", err)
		}
		key, err := publish.ParseAppKey(pemBytes)
		if err != nil {
			return "", err
		}
		return publish.AppJWT(publishAppID, key)
	}

	token := cfg.GitHubToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return "", fmt.Errorf("a GitHub token is required (github_token in the config file or GITHUB_TOKEN)")
	}
	return token, nil
}

// readSiteDir collects every regular file under root, keyed by its
// path relative to root.
func readSiteDir(root string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
