package stage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/llm/llmtest"
)

func TestRunExtractsFencedArtifact(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{"Here is the page:\n```html\n<html><body></body></html>\n```\nLet me know!"},
	}
	r := &Runner{Client: client}

	got, err := r.Run(context.Background(), Stage{ID: "home-html", Kind: extract.KindHTML, Tier: llm.TierStandard},
		[]llm.Message{{Role: llm.RoleUser, Content: "generate"}})
	require.NoError(t, err)
	assert.Equal(t, "<html><body></body></html>", got)
	assert.Equal(t, llm.TierStandard, client.Calls[0].Tier)
	assert.False(t, client.Calls[0].JSONMode)
}

func TestRunWrapsGenerationFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &llmtest.ScriptedClient{Err: cause}
	r := &Runner{Client: client}

	_, err := r.Run(context.Background(), Stage{ID: "home-css", Kind: extract.KindCSS},
		[]llm.Message{{Role: llm.RoleUser, Content: "generate"}})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "home-css", genErr.Stage)
	assert.ErrorIs(t, err, cause)
}

func TestRunStrictRequiresFence(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{"body { color: red }"}}
	r := &Runner{Client: client}

	_, err := r.Run(context.Background(), Stage{ID: "home-css", Kind: extract.KindCSS, Strict: true},
		[]llm.Message{{Role: llm.RoleUser, Content: "generate"}})

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "home-css", extErr.Stage)
	assert.Equal(t, extract.KindCSS, extErr.Kind)

	var nf *extract.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRunLenientFallsBackToWholeReply(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{"body { color: red }"}}
	r := &Runner{Client: client}

	got, err := r.Run(context.Background(), Stage{ID: "home-css", Kind: extract.KindCSS},
		[]llm.Message{{Role: llm.RoleUser, Content: "generate"}})
	require.NoError(t, err)
	assert.Equal(t, "body { color: red }", got)
}

func TestRunJSONStageUsesJSONMode(t *testing.T) {
	client := &llmtest.ScriptedClient{Responses: []string{`Sure: {"html": true, "css": false}`}}
	r := &Runner{Client: client}

	got, err := r.Run(context.Background(), Stage{ID: "plan-update", Kind: extract.KindJSON},
		[]llm.Message{{Role: llm.RoleUser, Content: "plan"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"html": true, "css": false}`, got)
	assert.True(t, client.Calls[0].JSONMode)
}
