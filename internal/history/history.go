// Package history records which component actions ran during a session.
// Recording is explicit middleware wrapped around handlers at wiring
// time, so reading code shows exactly which actions are recorded and
// handlers stay free of bookkeeping.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/jkoster/webfolio/internal/router"
	"github.com/jkoster/webfolio/internal/session"
)

// Entry is one recorded action.
type Entry struct {
	Timestamp time.Time
	Name      string
	Input     string
	Err       string
}

// Sink receives entries as actions complete.
type Sink interface {
	Record(sessionID string, entry Entry)
}

// MemorySink keeps entries in memory, grouped by session.
type MemorySink struct {
	mu      sync.Mutex
	entries map[string][]Entry
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{entries: make(map[string][]Entry)}
}

// Record implements Sink.
func (m *MemorySink) Record(sessionID string, entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = append(m.entries[sessionID], entry)
}

// Entries returns a copy of one session's history in recording order.
func (m *MemorySink) Entries(sessionID string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries[sessionID]))
	copy(out, m.entries[sessionID])
	return out
}

// Wrap returns a handler that records every invocation to the sink and
// then delegates. Failures are recorded too, with the error text.
func Wrap(name string, sink Sink, next router.HandlerFunc) router.HandlerFunc {
	return func(ctx context.Context, state *session.State, task string) (string, error) {
		result, err := next(ctx, state, task)
		entry := Entry{
			Timestamp: time.Now().UTC(),
			Name:      name,
			Input:     task,
		}
		if err != nil {
			entry.Err = err.Error()
		}
		sink.Record(state.ID.String(), entry)
		return result, err
	}
}

// WrapHandlers records both actions of a component under distinct names.
func WrapHandlers(component string, sink Sink, h router.Handlers) router.Handlers {
	if h.Create != nil {
		h.Create = Wrap(component+".create", sink, h.Create)
	}
	if h.Update != nil {
		h.Update = Wrap(component+".update", sink, h.Update)
	}
	return h
}
