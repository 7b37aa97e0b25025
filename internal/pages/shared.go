package pages

import (
	"context"
	"strings"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
)

// SharedGenerator builds the assets every page links: the navigation
// triple and the site-wide stylesheet and script.
type SharedGenerator struct {
	Runner *stage.Runner
}

// Create generates navigation and shared assets from the session's
// section list.
func (g *SharedGenerator) Create(ctx context.Context, state *session.State, task string) (string, error) {
	if err := g.generateNavigation(ctx, state); err != nil {
		return "", err
	}

	sections := strings.Join(state.Facts.Sections, "\n")

	sharedCSS, err := g.Runner.Run(ctx, stage.Stage{
		ID: "shared-css", Kind: extract.KindCSS, Tier: llm.TierStandard,
	}, promptMessages("shared.json", "shared-css", map[string]string{"Sections": sections}))
	if err != nil {
		return "", err
	}
	state.SharedCSS = sharedCSS

	sharedJS, err := g.Runner.Run(ctx, stage.Stage{
		ID: "shared-js", Kind: extract.KindJS, Tier: llm.TierStandard,
	}, promptMessages("shared.json", "shared-js", map[string]string{"Sections": sections}))
	if err != nil {
		return "", err
	}
	state.SharedJS = sharedJS

	return "navigation and shared assets generated", nil
}

// Update classifies which shared element the change targets and rewrites
// just that element. A navigation change also rewrites the section list
// and regenerates the whole navigation triple, since its markup, styles,
// and behavior move together.
func (g *SharedGenerator) Update(ctx context.Context, state *session.State, task string) (string, error) {
	reply, err := g.Runner.Client.Complete(ctx, llm.Request{
		Messages: promptMessages("shared.json", "classify-shared-element", map[string]string{"Change": task}),
		Tier:     llm.TierLite,
	})
	if err != nil {
		return "", err
	}

	switch element := strings.ToLower(strings.TrimSpace(reply)); {
	case strings.Contains(element, "navigation"):
		if err := g.updateSections(ctx, state, task); err != nil {
			return "", err
		}
		if err := g.generateNavigation(ctx, state); err != nil {
			return "", err
		}
		return "navigation updated", nil

	case strings.Contains(element, "css"):
		updated, err := g.updateAsset(ctx, extract.KindCSS, state.SharedCSS, task)
		if err != nil {
			return "", err
		}
		state.SharedCSS = updated
		return "shared styles updated", nil

	default:
		updated, err := g.updateAsset(ctx, extract.KindJS, state.SharedJS, task)
		if err != nil {
			return "", err
		}
		state.SharedJS = updated
		return "shared script updated", nil
	}
}

func (g *SharedGenerator) generateNavigation(ctx context.Context, state *session.State) error {
	sections := strings.Join(state.Facts.Sections, "\n")

	navHTML, err := g.Runner.Run(ctx, stage.Stage{
		ID: "nav-html", Kind: extract.KindHTML, Tier: llm.TierStandard,
	}, promptMessages("shared.json", "nav-html", map[string]string{"Sections": sections}))
	if err != nil {
		return err
	}
	state.NavHTML = navHTML

	navCSS, err := g.Runner.Run(ctx, stage.Stage{
		ID: "nav-css", Kind: extract.KindCSS, Tier: llm.TierStandard,
	}, promptMessages("shared.json", "nav-css", map[string]string{"HTML": navHTML}))
	if err != nil {
		return err
	}
	state.NavCSS = navCSS

	navJS, err := g.Runner.Run(ctx, stage.Stage{
		ID: "nav-js", Kind: extract.KindJS, Tier: llm.TierStandard,
	}, promptMessages("shared.json", "nav-js", map[string]string{"HTML": navHTML}))
	if err != nil {
		return err
	}
	state.NavJS = navJS
	return nil
}

// updateSections rewrites the session's section list per the change and
// renormalizes it, so About Me stays first no matter what the model
// returns.
func (g *SharedGenerator) updateSections(ctx context.Context, state *session.State, change string) error {
	reply, err := g.Runner.Client.Complete(ctx, llm.Request{
		Messages: promptMessages("facts.json", "update-nav-sections", map[string]string{
			"Sections": strings.Join(state.Facts.Sections, "\n"),
			"Change":   change,
		}),
		Tier: llm.TierLite,
	})
	if err != nil {
		return err
	}

	var sections []string
	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sections = append(sections, line)
		}
	}
	if len(sections) == 0 {
		sections = state.Facts.Sections
	}
	state.Facts.Sections = facts.NormalizeSections(sections)
	return nil
}

func (g *SharedGenerator) updateAsset(ctx context.Context, kind extract.Kind, content, change string) (string, error) {
	label := string(kind)
	return g.Runner.Run(ctx, stage.Stage{
		ID: "update-asset-" + label, Kind: kind, Tier: llm.TierStandard,
	}, promptMessages("shared.json", "update-asset", map[string]string{
		"Kind":    label,
		"Change":  change,
		"Content": content,
	}))
}
