package router

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Task is one routed unit of work: what to do, and which component
// does it.
type Task struct {
	Description string
	Component   Component
}

// parseTasks reads the decomposition object while preserving key order,
// which encodes the order the work should happen in. A plain unmarshal
// into a map would lose it. Keys are task descriptions, values the
// component each task routes to.
func parseTasks(doc string) ([]Task, error) {
	dec := json.NewDecoder(strings.NewReader(doc))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("router: reading task object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("router: task decomposition is not a JSON object")
	}

	var tasks []Task
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("router: reading task key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("router: task key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("router: reading component for %q: %w", key, err)
		}
		tasks = append(tasks, Task{
			Description: strings.TrimSpace(key),
			Component:   Component(strings.ToLower(componentText(raw))),
		})
	}
	return tasks, nil
}

// componentText renders a task value as a component label. The model is
// asked for bare component names but occasionally nests them in
// objects; those pass through as compact JSON and fail the registry
// lookup with the label visible in the error.
func componentText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
