package router

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

// Action is the binary classification of a user request.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Router classifies an instruction, decomposes it into component tasks,
// and dispatches them in order.
type Router struct {
	Runner   *stage.Runner
	Registry *Registry
}

// Route runs the full pipeline for one instruction. Task failures are
// isolated: a failing task is reported in the result lines and the
// remaining tasks still run. Only classification and decomposition
// failures abort the whole instruction.
func (r *Router) Route(ctx context.Context, state *session.State, input string) (string, error) {
	action, err := r.Classify(ctx, input)
	if err != nil {
		return "", err
	}

	tasks, err := r.Decompose(ctx, action, input)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "Nothing to do for that request.", nil
	}

	return r.Dispatch(ctx, state, action, tasks), nil
}

// Classify labels the instruction create or update. Only an exact or
// embedded "create" counts as create; everything else, including any
// unexpected label, is treated as update so existing work is never
// rebuilt from scratch on a misclassification.
func (r *Router) Classify(ctx context.Context, input string) (Action, error) {
	reply, err := r.Runner.Client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("router.json", "classify-action-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("router.json", "classify-action"),
				map[string]string{"Input": input})},
		},
		Tier: llm.TierLite,
	})
	if err != nil {
		return "", err
	}

	label := strings.ToLower(strings.TrimSpace(reply))
	if label == "create" || strings.Contains(label, "create") {
		return ActionCreate, nil
	}
	return ActionUpdate, nil
}

// Decompose asks the model to split the instruction into per-component
// tasks and parses them in returned order. Malformed decomposition JSON
// is fatal for the instruction.
func (r *Router) Decompose(ctx context.Context, action Action, input string) ([]Task, error) {
	doc, err := r.Runner.Run(ctx, stage.Stage{
		ID:   "decompose-tasks",
		Kind: extract.KindJSON,
		Tier: llm.TierStandard,
	}, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("router.json", "decompose-tasks-system")},
		{Role: llm.RoleUser, Content: prompts.Format(
			prompts.MustGet("router.json", "decompose-tasks"),
			map[string]string{
				"Action":     string(action),
				"Components": r.Registry.Describe(),
				"Input":      input,
			})},
	})
	if err != nil {
		return nil, err
	}
	return parseTasks(doc)
}

// Dispatch runs tasks in order, one result line per task. Lines start
// with a check mark on success and a cross on failure so a mixed outcome
// is readable at a glance.
func (r *Router) Dispatch(ctx context.Context, state *session.State, action Action, tasks []Task) string {
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		result, err := r.runTask(ctx, state, action, task)
		if err != nil {
			lines = append(lines, fmt.Sprintf("✗ %s: %v", task.Description, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("✓ %s: %s", task.Description, result))
	}
	return strings.Join(lines, "\n")
}

func (r *Router) runTask(ctx context.Context, state *session.State, action Action, task Task) (string, error) {
	handlers, ok := r.Registry.Lookup(task.Component)
	if !ok {
		return "", &UnknownComponentError{Component: task.Component}
	}

	handler := handlers.Update
	if action == ActionCreate {
		handler = handlers.Create
	}
	if handler == nil {
		return "", &UnsupportedActionError{Component: task.Component, Action: action}
	}
	return handler(ctx, state, task.Description)
}
