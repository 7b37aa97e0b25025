// Package ghprofile reviews a live GitHub profile and suggests
// improvements grounded in the session's facts. The profile page is
// fetched statically and rendered in a headless browser only when the
// static HTML is too thin to judge.
package ghprofile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkoster/webfolio/internal/fetch"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/prompts"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
)

// Optimizer fetches and reviews GitHub profiles.
type Optimizer struct {
	Runner *stage.Runner
	// FetchOptions overrides fetch defaults, mainly for tests.
	FetchOptions *fetch.Options
	// DisableBrowser skips the headless-browser fallback.
	DisableBrowser bool
}

// Review fetches the profile for a username and returns improvement
// suggestions. The task may carry a username or a full profile URL.
func (o *Optimizer) Review(ctx context.Context, state *session.State, task string) (string, error) {
	profileURL, err := resolveProfileURL(task)
	if err != nil {
		return "", err
	}

	text, err := o.profileText(ctx, profileURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("ghprofile: profile page at %s had no readable content", profileURL)
	}

	f := state.Facts.Facts
	return o.Runner.Client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("profile.json", "optimize-profile-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("profile.json", "optimize-profile"),
				map[string]string{
					"Profile": text,
					"Name":    f.Name,
					"Role":    f.Role,
					"Bio":     f.Bio,
				})},
		},
		Tier: llm.TierAdvanced,
	})
}

// SuggestBio writes a short profile bio from the session facts alone; no
// fetch is needed.
func (o *Optimizer) SuggestBio(ctx context.Context, state *session.State) (string, error) {
	if ask := state.Facts.Facts.PromptForMissing(); ask != "" {
		return ask, nil
	}
	f := state.Facts.Facts
	return o.Runner.Client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("profile.json", "profile-bio-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("profile.json", "profile-bio"),
				map[string]string{"Name": f.Name, "Role": f.Role, "Bio": f.Bio})},
		},
		Tier: llm.TierLite,
	})
}

func (o *Optimizer) profileText(ctx context.Context, profileURL string) (string, error) {
	result, err := fetch.URL(ctx, profileURL, o.FetchOptions)
	if err != nil {
		return "", err
	}

	text, err := fetch.ExtractMainText(result.HTML,
		fetch.GitHubProfileSelectors(),
		fetch.GitHubProfileNoiseSelectors()...)
	if err != nil {
		return "", err
	}

	if fetch.ShouldUseBrowser(text) && !o.DisableBrowser {
		html, err := fetch.BrowserSimple(ctx, profileURL)
		if err != nil {
			// static text is thin but usable; browser failure is not fatal
			return text, nil
		}
		rendered, err := fetch.ExtractMainText(html,
			fetch.GitHubProfileSelectors(),
			fetch.GitHubProfileNoiseSelectors()...)
		if err == nil && len(rendered) > len(text) {
			return rendered, nil
		}
	}
	return text, nil
}

// resolveProfileURL accepts "username", "@username", or a full GitHub
// URL and returns the profile URL.
func resolveProfileURL(task string) (string, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return "", fmt.Errorf("ghprofile: no username or profile URL given")
	}

	if strings.Contains(task, "://") {
		if !fetch.IsGitHubURL(task) {
			return "", fmt.Errorf("ghprofile: %s is not a GitHub URL", task)
		}
		return task, nil
	}

	// take the last whitespace-separated token, so "review my profile
	// octocat" works as well as a bare username
	fields := strings.Fields(task)
	return fetch.GitHubProfileURL(fields[len(fields)-1])
}
