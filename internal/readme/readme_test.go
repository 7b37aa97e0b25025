package readme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkoster/webfolio/internal/llm/llmtest"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/stage"
)

func completeState() *session.State {
	state := session.New()
	state.Facts.Facts.Name = "Jordan Lee"
	state.Facts.Facts.Role = "Software Engineer at Initech"
	state.Facts.Facts.Bio = "Engineer who ships."
	state.Facts.Facts.Contact = "jordan@example.com"
	return state
}

func TestCreateAsksForMissingFacts(t *testing.T) {
	client := &llmtest.ScriptedClient{}
	g := &Generator{Runner: &stage.Runner{Client: client}}

	result, err := g.Create(context.Background(), session.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "What is your full name?", result)
	assert.Empty(t, client.Calls)
}

func TestCreateStripsMarkdownFence(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{"```markdown\n# Hi, I'm Jordan\n\nEngineer who ships.\n```\nHope you like it!"},
	}
	g := &Generator{Runner: &stage.Runner{Client: client}}

	state := completeState()
	result, err := g.Create(context.Background(), state, "")
	require.NoError(t, err)
	assert.Equal(t, "profile README generated", result)
	assert.Equal(t, "# Hi, I'm Jordan\n\nEngineer who ships.", state.Readme)
}

func TestCreateKeepsUnfencedReply(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{"# Hi, I'm Jordan"}}
	g := &Generator{Runner: &stage.Runner{Client: client}}

	state := completeState()
	_, err := g.Create(context.Background(), state, "")
	require.NoError(t, err)
	assert.Equal(t, "# Hi, I'm Jordan", state.Readme)
}

func TestUpdateWithoutReadmeCreates(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{"# Fresh README"}}
	g := &Generator{Runner: &stage.Runner{Client: client}}

	state := completeState()
	result, err := g.Update(context.Background(), state, "add a skills table")
	require.NoError(t, err)
	assert.Equal(t, "profile README generated", result)
	assert.Contains(t, client.LastUserContent(), "profile README for this person")
}

func TestUpdateSendsCurrentReadme(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{"```markdown\n# Hi\n\n| Skill |\n|---|\n| Go |\n```"},
	}
	g := &Generator{Runner: &stage.Runner{Client: client}}

	state := completeState()
	state.Readme = "# Hi"

	result, err := g.Update(context.Background(), state, "add a skills table")
	require.NoError(t, err)
	assert.Equal(t, "profile README updated", result)
	assert.Contains(t, client.LastUserContent(), "# Hi")
	assert.Contains(t, state.Readme, "| Go |")
}

func TestPreviewRendersGFM(t *testing.T) {
	state := completeState()
	state.Readme = "# Hi\n\n| Skill |\n| --- |\n| Go |\n\n~~old~~"

	html, err := Preview(state)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<del>")
}

func TestPreviewWithoutReadme(t *testing.T) {
	_, err := Preview(session.New())
	assert.Error(t, err)
}
