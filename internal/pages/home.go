// Package pages generates the site's pages and shared assets. Each page
// is built in dependency order: markup first, then styles against that
// markup, then behavior against both. Generators never run until the
// required personal facts are present; a missing fact produces a normal
// clarification reply rather than an error.
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkoster/webfolio/internal/assemble"
	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/prompts"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
	"github.com/jkoster/webfolio/internal/update"
)

// HomeGenerator builds and updates the landing page. The home page is a
// skeleton built from the personal facts with one fragment per resume
// section inserted into it.
type HomeGenerator struct {
	Runner    *stage.Runner
	Assembler *assemble.Assembler
	Applier   *update.Applier
}

// Create builds the home page. When required facts are missing, the
// clarification question for the first missing fact is returned instead
// of generating anything.
func (g *HomeGenerator) Create(ctx context.Context, state *session.State, task string) (string, error) {
	if ask := state.Facts.Facts.PromptForMissing(); ask != "" {
		return ask, nil
	}
	f := state.Facts.Facts

	skeleton, err := g.Runner.Run(ctx, stage.Stage{
		ID: "home-html", Kind: extract.KindHTML, Tier: llm.TierStandard,
	}, promptMessages("pages.json", "home-html", map[string]string{
		"Name":    f.Name,
		"Role":    f.Role,
		"Bio":     f.Bio,
		"Contact": f.Contact,
		"Nav":     state.NavHTML,
	}))
	if err != nil {
		return "", err
	}

	fragments, sectionCSS, sectionJS, err := g.sectionFragments(ctx, state)
	if err != nil {
		return "", err
	}

	page, warnings, err := g.Assembler.Page(skeleton, fragments)
	if err != nil {
		return "", err
	}

	baseCSS, err := g.Runner.Run(ctx, stage.Stage{
		ID: "home-css", Kind: extract.KindCSS, Tier: llm.TierStandard,
	}, promptMessages("pages.json", "home-css", map[string]string{"HTML": page}))
	if err != nil {
		return "", err
	}

	css, err := g.Assembler.Stylesheet(ctx, append([]string{baseCSS}, sectionCSS...))
	if err != nil {
		return "", err
	}

	baseJS, err := g.Runner.Run(ctx, stage.Stage{
		ID: "home-js", Kind: extract.KindJS, Tier: llm.TierStandard,
	}, promptMessages("pages.json", "home-js", map[string]string{"HTML": page, "CSS": css}))
	if err != nil {
		return "", err
	}

	js, err := g.Assembler.Script(ctx, append([]string{baseJS}, sectionJS...))
	if err != nil {
		return "", err
	}

	set := state.Page(facts.AboutSection)
	set.HTML = page
	set.CSS = css
	set.JS = js

	result := "home page generated"
	if len(warnings) > 0 {
		result += " (" + strings.Join(warnings, "; ") + ")"
	}
	return result, nil
}

// sectionFragments generates one fragment per non-About section, in
// section order. A section whose fragment stage fails stops the build;
// a section with an empty script simply contributes no script.
func (g *HomeGenerator) sectionFragments(ctx context.Context, state *session.State) (fragments, css, js []string, err error) {
	for _, section := range state.Facts.Sections {
		if strings.EqualFold(section, facts.AboutSection) {
			continue
		}

		content, err := state.Facts.SectionContent(ctx, g.Runner.Client, section)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("section %s: %w", section, err)
		}
		id := facts.SectionSlug(section)

		fragment, err := g.Runner.Run(ctx, stage.Stage{
			ID: "section-html-" + id, Kind: extract.KindHTML, Tier: llm.TierStandard,
		}, promptMessages("pages.json", "section-html", map[string]string{
			"Section":   section,
			"SectionID": id,
			"Content":   string(content),
		}))
		if err != nil {
			return nil, nil, nil, err
		}
		fragments = append(fragments, fragment)

		fragCSS, err := g.Runner.Run(ctx, stage.Stage{
			ID: "section-css-" + id, Kind: extract.KindCSS, Tier: llm.TierStandard,
		}, promptMessages("pages.json", "section-css", map[string]string{
			"Section":   section,
			"SectionID": id,
			"HTML":      fragment,
		}))
		if err != nil {
			return nil, nil, nil, err
		}
		css = append(css, fragCSS)

		fragJS, err := g.Runner.Run(ctx, stage.Stage{
			ID: "section-js-" + id, Kind: extract.KindJS, Tier: llm.TierStandard,
		}, promptMessages("pages.json", "section-js", map[string]string{
			"Section":   section,
			"SectionID": id,
			"HTML":      fragment,
		}))
		if err != nil {
			return nil, nil, nil, err
		}
		if strings.TrimSpace(fragJS) != "" {
			js = append(js, fragJS)
		}
	}
	return fragments, css, js, nil
}

// Update edits the existing home page in place. With no home page yet,
// the update becomes a create.
func (g *HomeGenerator) Update(ctx context.Context, state *session.State, task string) (string, error) {
	if !state.HasPage(facts.AboutSection) {
		return g.Create(ctx, state, task)
	}

	plan, err := g.Applier.PlanUpdate(ctx, task, state.FileNames())
	if err != nil {
		return "", err
	}
	if plan.Empty() {
		return "no home page files needed changes", nil
	}
	if err := g.Applier.Apply(ctx, plan, state.Page(facts.AboutSection)); err != nil {
		return "", err
	}
	return "home page updated (" + plan.String() + ")", nil
}

// promptMessages builds the system+user message pair for a prompt key.
func promptMessages(file, key string, data map[string]string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet(file, key+"-system")},
		{Role: llm.RoleUser, Content: prompts.Format(prompts.MustGet(file, key), data)},
	}
}
