package store

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jkoster/webfolio/internal/history"
)

// HistorySink adapts the store to history.Sink so routed actions are
// persisted as they happen. Recording is best-effort: a failed insert
// is logged and the action itself is not disturbed.
type HistorySink struct {
	Store *Store
	// Timeout bounds each insert so a stalled database cannot stall
	// the conversation.
	Timeout time.Duration
}

// Record implements history.Sink.
func (h *HistorySink) Record(sessionID string, entry history.Entry) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		log.Printf("store: history entry for unparseable session %q dropped", sessionID)
		return
	}

	timeout := h.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := h.Store.AppendHistory(ctx, id, entry); err != nil {
		log.Printf("store: recording history for session %s: %v", sessionID, err)
	}
}
