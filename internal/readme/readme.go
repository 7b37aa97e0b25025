// Package readme generates and updates a GitHub profile README from the
// session's facts. The rendered-HTML preview exists so callers can show
// what GitHub will display without shipping the Markdown anywhere.
package readme

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/prompts"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
)

// markdown renders previews with GitHub-flavored extensions enabled, so
// tables and strikethrough preview the way GitHub shows them.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Generator builds and edits the profile README.
type Generator struct {
	Runner *stage.Runner
}

// Create writes a fresh README from the session facts. Missing facts
// produce the clarification question instead of generating.
func (g *Generator) Create(ctx context.Context, state *session.State, task string) (string, error) {
	if ask := state.Facts.Facts.PromptForMissing(); ask != "" {
		return ask, nil
	}
	f := state.Facts.Facts

	reply, err := g.Runner.Client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("readme.json", "generate-readme-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("readme.json", "generate-readme"),
				map[string]string{
					"Name":    f.Name,
					"Role":    f.Role,
					"Bio":     f.Bio,
					"Contact": f.Contact,
					"Resume":  state.Facts.Resume,
				})},
		},
		Tier: llm.TierStandard,
	})
	if err != nil {
		return "", err
	}

	state.Readme = extractMarkdown(reply)
	return "profile README generated", nil
}

// Update edits the existing README; without one it creates it.
func (g *Generator) Update(ctx context.Context, state *session.State, task string) (string, error) {
	if strings.TrimSpace(state.Readme) == "" {
		return g.Create(ctx, state, task)
	}

	reply, err := g.Runner.Client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("readme.json", "update-readme-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("readme.json", "update-readme"),
				map[string]string{
					"Change":  task,
					"Content": state.Readme,
				})},
		},
		Tier: llm.TierStandard,
	})
	if err != nil {
		return "", err
	}

	state.Readme = extractMarkdown(reply)
	return "profile README updated", nil
}

// Preview renders the session's README to HTML.
func Preview(state *session.State) (string, error) {
	if strings.TrimSpace(state.Readme) == "" {
		return "", fmt.Errorf("readme: nothing to preview, generate a README first")
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(state.Readme), &buf); err != nil {
		return "", fmt.Errorf("readme: rendering preview: %w", err)
	}
	return buf.String(), nil
}

// extractMarkdown pulls the document out of a fenced reply, falling back
// to the whole reply. Markdown has no entry in the code-fence kinds, so
// the fence is stripped by hand.
func extractMarkdown(reply string) string {
	reply = strings.TrimSpace(reply)
	for _, tag := range []string{"```markdown\n", "```md\n"} {
		if rest, found := strings.CutPrefix(reply, tag); found {
			if idx := strings.LastIndex(rest, "```"); idx >= 0 {
				rest = rest[:idx]
			}
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(stripOuterFence(reply))
}

func stripOuterFence(reply string) string {
	if rest, found := strings.CutPrefix(reply, "```\n"); found {
		if idx := strings.LastIndex(rest, "```"); idx >= 0 {
			rest = rest[:idx]
		}
		return rest
	}
	return reply
}
