// Package router turns a free-form user instruction into ordered tasks
// for the site's components and dispatches them. The component set is a
// closed enum: the model can only route to components registered here,
// and anything else is reported as an unknown component rather than
// executed.
package router

import (
	"context"
	"fmt"

	"github.com/jkoster/webfolio/internal/session"
)

// Component names a routable part of the site.
type Component string

// The closed set of routable components.
const (
	ComponentHome      Component = "home"
	ComponentEducation Component = "education"
	ComponentShared    Component = "shared"
	ComponentReadme    Component = "readme"
	ComponentProfile   Component = "profile"
)

// HandlerFunc executes one task against the session and returns a short
// human-readable result.
type HandlerFunc func(ctx context.Context, state *session.State, task string) (string, error)

// Handlers pairs a component's create and update behaviors. A nil entry
// means the component does not support that action.
type Handlers struct {
	Description string
	Create      HandlerFunc
	Update      HandlerFunc
}

// Registry maps components to their handlers. Build it once at startup;
// it is read-only during routing.
type Registry struct {
	handlers map[Component]Handlers
	order    []Component
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Component]Handlers)}
}

// Register adds a component. Registering the same component twice panics;
// that is always a wiring bug.
func (r *Registry) Register(c Component, h Handlers) {
	if _, exists := r.handlers[c]; exists {
		panic(fmt.Sprintf("router: component %q registered twice", c))
	}
	r.handlers[c] = h
	r.order = append(r.order, c)
}

// Lookup returns the handlers for a component.
func (r *Registry) Lookup(c Component) (Handlers, bool) {
	h, ok := r.handlers[c]
	return h, ok
}

// Components returns the registered components in registration order.
func (r *Registry) Components() []Component {
	out := make([]Component, len(r.order))
	copy(out, r.order)
	return out
}

// Describe renders the component list for the decomposition prompt.
func (r *Registry) Describe() string {
	var out string
	for _, c := range r.order {
		out += fmt.Sprintf("- %s: %s\n", c, r.handlers[c].Description)
	}
	return out
}
