package pages

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/session"
)

// sectionPageConcurrency bounds how many section pages generate at once.
// Provider rate limits bite quickly above this.
const sectionPageConcurrency = 3

// SiteBuilder creates a complete site: shared assets first so every page
// can link them, then the home page, then one page per section. Section
// pages are independent of each other and generate concurrently.
type SiteBuilder struct {
	Home   *HomeGenerator
	Shared *SharedGenerator
	// NewSection returns the generator for one section page.
	NewSection func(section string) *SectionGenerator
}

// Build generates the whole site. When required facts are missing, the
// clarification question is returned and nothing is generated.
func (b *SiteBuilder) Build(ctx context.Context, state *session.State) (string, error) {
	if ask := state.Facts.Facts.PromptForMissing(); ask != "" {
		return ask, nil
	}

	if _, err := b.Shared.Create(ctx, state, ""); err != nil {
		return "", fmt.Errorf("shared assets: %w", err)
	}

	homeResult, err := b.Home.Create(ctx, state, "")
	if err != nil {
		return "", fmt.Errorf("home page: %w", err)
	}

	var sections []string
	for _, s := range state.Facts.Sections {
		if !strings.EqualFold(s, facts.AboutSection) {
			sections = append(sections, s)
		}
	}

	// results are indexed so output order matches section order no
	// matter which page finishes first
	results := make([]string, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sectionPageConcurrency)

	for i, section := range sections {
		g.Go(func() error {
			gen := b.NewSection(section)
			result, err := gen.Create(gctx, state, "")
			if err != nil {
				return fmt.Errorf("%s page: %w", strings.ToLower(section), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	lines := append([]string{"navigation and shared assets generated", homeResult}, results...)
	return strings.Join(lines, "\n"), nil
}
