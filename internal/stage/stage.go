// Package stage runs one model-backed generation step: complete a prompt,
// then pull the expected artifact kind out of the reply. Failures are
// split into generation errors (the model call itself failed) and
// extraction errors (the reply held no usable artifact), so callers can
// report which stage of a multi-step build broke.
package stage

import (
	"context"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/llm"
)

// Stage describes one generation step.
type Stage struct {
	// ID names the step in errors, e.g. "home-html" or "nav-css".
	ID   string
	Kind extract.Kind
	Tier llm.ModelTier
	// Temperature of 0 means the provider default.
	Temperature float32
	// Strict disables the whole-reply extraction fallback: the artifact
	// must arrive in a code fence.
	Strict bool
}

// Runner executes stages against one client.
type Runner struct {
	Client llm.Client
}

// Run completes the messages and extracts the stage's artifact kind from
// the reply. JSON stages use JSON mode and tolerant JSON extraction; code
// stages use fence extraction.
func (r *Runner) Run(ctx context.Context, st Stage, messages []llm.Message) (string, error) {
	req := llm.Request{
		Messages:    messages,
		Temperature: st.Temperature,
		Tier:        st.Tier,
		JSONMode:    st.Kind == extract.KindJSON,
	}

	reply, err := r.Client.Complete(ctx, req)
	if err != nil {
		return "", &GenerationError{Stage: st.ID, Cause: err}
	}

	var artifact string
	if st.Kind == extract.KindJSON {
		artifact, err = extract.JSON(reply)
	} else {
		artifact, err = extract.Code(reply, st.Kind, st.Strict)
	}
	if err != nil {
		return "", &ExtractionError{Stage: st.ID, Kind: st.Kind, Cause: err}
	}
	return artifact, nil
}
