package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
	"github.com/jkoster/webfolio/internal/update"
)

// SectionGenerator builds a standalone page for one resume section.
// Education gets its own page prompt and schema; every other section
// uses the generic page prompt.
type SectionGenerator struct {
	Runner  *stage.Runner
	Applier *update.Applier
	// Section names the resume section this generator is bound to.
	Section string
}

// Create builds the section's page against the current navigation.
func (g *SectionGenerator) Create(ctx context.Context, state *session.State, task string) (string, error) {
	if ask := state.Facts.Facts.PromptForMissing(); ask != "" {
		return ask, nil
	}

	content, err := state.Facts.SectionContent(ctx, g.Runner.Client, g.Section)
	if err != nil {
		return "", err
	}

	slug := facts.SectionSlug(g.Section)
	html, err := g.pageHTML(ctx, state, string(content), slug)
	if err != nil {
		return "", err
	}

	css, err := g.Runner.Run(ctx, stage.Stage{
		ID: "page-css-" + slug, Kind: extract.KindCSS, Tier: llm.TierStandard,
	}, promptMessages("pages.json", "page-css", map[string]string{"HTML": html}))
	if err != nil {
		return "", err
	}

	js, err := g.Runner.Run(ctx, stage.Stage{
		ID: "page-js-" + slug, Kind: extract.KindJS, Tier: llm.TierStandard,
	}, promptMessages("pages.json", "page-js", map[string]string{"HTML": html}))
	if err != nil {
		return "", err
	}

	set := state.Page(g.Section)
	set.HTML = html
	set.CSS = css
	set.JS = js
	return fmt.Sprintf("%s page generated", strings.ToLower(g.Section)), nil
}

func (g *SectionGenerator) pageHTML(ctx context.Context, state *session.State, content, slug string) (string, error) {
	if strings.EqualFold(g.Section, "Education") {
		return g.Runner.Run(ctx, stage.Stage{
			ID: "education-html", Kind: extract.KindHTML, Tier: llm.TierStandard,
		}, promptMessages("pages.json", "education-html", map[string]string{
			"Content": content,
			"Nav":     state.NavHTML,
		}))
	}
	return g.Runner.Run(ctx, stage.Stage{
		ID: "section-page-" + slug, Kind: extract.KindHTML, Tier: llm.TierStandard,
	}, promptMessages("pages.json", "section-page", map[string]string{
		"Section": g.Section,
		"Content": content,
		"Nav":     state.NavHTML,
		"Slug":    slug,
	}))
}

// Update edits the section's existing page; without one it creates it.
func (g *SectionGenerator) Update(ctx context.Context, state *session.State, task string) (string, error) {
	if !state.HasPage(g.Section) {
		return g.Create(ctx, state, task)
	}

	plan, err := g.Applier.PlanUpdate(ctx, task, state.FileNames())
	if err != nil {
		return "", err
	}
	if plan.Empty() {
		return "no files needed changes", nil
	}
	if err := g.Applier.Apply(ctx, plan, state.Page(g.Section)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s page updated (%s)", strings.ToLower(g.Section), plan), nil
}
