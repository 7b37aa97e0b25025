// Package update edits existing page artifacts. An update is planned
// first (what must change in each of html, css, js) and then applied
// one file at a time with the full document in and out, so untouched
// files stay byte-identical.
package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/prompts"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
)

// Plan describes, per artifact kind, what an update must change. A nil
// entry means that kind is untouched. Splitting the request this way
// keeps a mixed instruction from leaking into kinds it does not
// concern: each apply pass sees only its own description.
type Plan struct {
	HTML *string `json:"html"`
	CSS  *string `json:"css"`
	JS   *string `json:"js"`
}

// Empty reports whether the plan touches nothing.
func (p Plan) Empty() bool { return !planned(p.HTML) && !planned(p.CSS) && !planned(p.JS) }

func (p Plan) String() string {
	var parts []string
	if planned(p.HTML) {
		parts = append(parts, "html")
	}
	if planned(p.CSS) {
		parts = append(parts, "css")
	}
	if planned(p.JS) {
		parts = append(parts, "js")
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// planned treats null and blank descriptions alike as untouched.
func planned(desc *string) bool {
	return desc != nil && strings.TrimSpace(*desc) != ""
}

// Applier plans and applies page updates.
type Applier struct {
	Runner *stage.Runner
}

// PlanUpdate asks the model what must change in each file, or null for
// files the change does not touch.
func (a *Applier) PlanUpdate(ctx context.Context, change string, files []string) (Plan, error) {
	doc, err := a.Runner.Run(ctx, stage.Stage{
		ID:   "plan-update",
		Kind: extract.KindJSON,
		Tier: llm.TierLite,
	}, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("update.json", "plan-update-system")},
		{Role: llm.RoleUser, Content: prompts.Format(
			prompts.MustGet("update.json", "plan-update"),
			map[string]string{
				"Change": change,
				"Files":  strings.Join(files, ", "),
			})},
	})
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	if err := extract.Unmarshal(doc, &plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Apply rewrites the planned parts of a page in place, each driven by
// its own change description. Parts outside the plan are not touched
// at all.
func (a *Applier) Apply(ctx context.Context, plan Plan, set *session.ArtifactSet) error {
	pageContext := fmt.Sprintf("```html\n%s\n```", set.HTML)

	if planned(plan.HTML) {
		updated, err := a.applyOne(ctx, *plan.HTML, extract.KindHTML, set.HTML, pageContext)
		if err != nil {
			return err
		}
		set.HTML = updated
		pageContext = fmt.Sprintf("```html\n%s\n```", set.HTML)
	}
	if planned(plan.CSS) {
		updated, err := a.applyOne(ctx, *plan.CSS, extract.KindCSS, set.CSS, pageContext)
		if err != nil {
			return err
		}
		set.CSS = updated
	}
	if planned(plan.JS) {
		updated, err := a.applyOne(ctx, *plan.JS, extract.KindJS, set.JS, pageContext)
		if err != nil {
			return err
		}
		set.JS = updated
	}
	return nil
}

func (a *Applier) applyOne(ctx context.Context, change string, kind extract.Kind, content, pageContext string) (string, error) {
	label := string(kind)
	return a.Runner.Run(ctx, stage.Stage{
		ID:   "apply-update-" + label,
		Kind: kind,
		Tier: llm.TierStandard,
	}, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("update.json", "apply-update-system")},
		{Role: llm.RoleUser, Content: prompts.Format(
			prompts.MustGet("update.json", "apply-update"),
			map[string]string{
				"Kind":    label,
				"Change":  change,
				"Context": pageContext,
				"Content": content,
			})},
	})
}
