package router

import "fmt"

// UnknownComponentError means the model routed a task to a component
// outside the registry.
type UnknownComponentError struct {
	Component Component
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("router: unknown component %q", e.Component)
}

// UnsupportedActionError means a registered component has no handler for
// the classified action.
type UnsupportedActionError struct {
	Component Component
	Action    Action
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("router: component %q does not support %s", e.Component, e.Action)
}
