// Package agent wires the generation pipeline together: fact
// extraction, routing, page generators, README and profile tooling.
// The agent itself is stateless; all per-conversation state arrives as
// a session passed into every call, so one agent serves any number of
// concurrent sessions.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkoster/webfolio/internal/assemble"
	"github.com/jkoster/webfolio/internal/ghprofile"
	"github.com/jkoster/webfolio/internal/history"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/pages"
	"github.com/jkoster/webfolio/internal/readme"
	"github.com/jkoster/webfolio/internal/router"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
	"github.com/jkoster/webfolio/internal/update"
)

// Options tune agent construction.
type Options struct {
	// History receives every routed action. Defaults to an in-memory sink.
	History history.Sink
	// DisableBrowser turns off the headless-browser fallback for
	// profile fetches.
	DisableBrowser bool
}

// Agent is the conversation entry point.
type Agent struct {
	runner  *stage.Runner
	router  *router.Router
	site    *pages.SiteBuilder
	history history.Sink
}

// New builds an agent around one model client.
func New(client llm.Client, opts Options) *Agent {
	sink := opts.History
	if sink == nil {
		sink = history.NewMemorySink()
	}

	runner := &stage.Runner{Client: client}
	assembler := &assemble.Assembler{Runner: runner}
	applier := &update.Applier{Runner: runner}

	home := &pages.HomeGenerator{Runner: runner, Assembler: assembler, Applier: applier}
	shared := &pages.SharedGenerator{Runner: runner}
	newSection := func(section string) *pages.SectionGenerator {
		return &pages.SectionGenerator{Runner: runner, Applier: applier, Section: section}
	}
	education := newSection("Education")
	readmeGen := &readme.Generator{Runner: runner}
	profile := &ghprofile.Optimizer{Runner: runner, DisableBrowser: opts.DisableBrowser}

	a := &Agent{
		runner: runner,
		site: &pages.SiteBuilder{
			Home:       home,
			Shared:     shared,
			NewSection: newSection,
		},
		history: sink,
	}

	reg := router.NewRegistry()
	reg.Register(router.ComponentHome, history.WrapHandlers("home", sink, router.Handlers{
		Description: "the home page: hero, about section, contact details",
		Create:      a.withSupportCheck(home.Create),
		Update:      home.Update,
	}))
	reg.Register(router.ComponentEducation, history.WrapHandlers("education", sink, router.Handlers{
		Description: "the education page",
		Create:      a.withSupportCheck(education.Create),
		Update:      education.Update,
	}))
	reg.Register(router.ComponentShared, history.WrapHandlers("shared", sink, router.Handlers{
		Description: "navigation and site-wide styles and scripts",
		Create:      shared.Create,
		Update:      shared.Update,
	}))
	reg.Register(router.ComponentReadme, history.WrapHandlers("readme", sink, router.Handlers{
		Description: "the GitHub profile README",
		Create:      readmeGen.Create,
		Update:      readmeGen.Update,
	}))
	reg.Register(router.ComponentProfile, history.WrapHandlers("profile", sink, router.Handlers{
		Description: "GitHub profile review and improvement suggestions",
		Update:      profile.Review,
	}))

	a.router = &router.Router{Runner: runner, Registry: reg}
	return a
}

// IngestResume extracts facts from resume text into the session. This
// always runs before any generation; generators refuse to run on an
// incomplete fact set.
func (a *Agent) IngestResume(ctx context.Context, state *session.State, resumeText string) error {
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Errorf("agent: resume text is empty")
	}
	return state.Facts.IngestResume(ctx, a.runner.Client, resumeText)
}

// BuildSite generates the complete site for the session. With facts
// missing it returns the clarification question instead.
func (a *Agent) BuildSite(ctx context.Context, state *session.State) (string, error) {
	return a.site.Build(ctx, state)
}

// HandleInstruction processes one conversational turn. While required
// facts are missing the turn is treated as a clarification answer; once
// the facts are complete it is routed to the components.
func (a *Agent) HandleInstruction(ctx context.Context, state *session.State, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("agent: empty instruction")
	}

	if !state.Facts.Facts.Complete() {
		if err := state.Facts.IngestClarification(ctx, a.runner.Client, input); err != nil {
			return "", err
		}
		if ask := state.Facts.Facts.PromptForMissing(); ask != "" {
			return ask, nil
		}
		return "Thanks, that completes your details. Ask me to build your website whenever you are ready.", nil
	}

	return a.router.Route(ctx, state, input)
}

// withSupportCheck appends a note about support files a task needs but
// the session does not have yet. Analysis failures never block the task.
func (a *Agent) withSupportCheck(next router.HandlerFunc) router.HandlerFunc {
	return func(ctx context.Context, state *session.State, task string) (string, error) {
		result, err := next(ctx, state, task)
		if err != nil || strings.TrimSpace(task) == "" {
			return result, err
		}

		missing, analyzeErr := pages.AnalyzeRequiredFiles(ctx, a.runner, task, state.FileNames())
		if analyzeErr != nil || len(missing) == 0 {
			return result, nil
		}
		return fmt.Sprintf("%s (still needs: %s)", result, strings.Join(missing, ", ")), nil
	}
}
