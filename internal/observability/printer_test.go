package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/history"
	"github.com/jkoster/webfolio/internal/session"
)

func TestPrintFacts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFacts(facts.Facts{Name: "Jordan Lee", Role: "Engineer at Initech"})

	out := buf.String()
	assert.Contains(t, out, "Jordan Lee")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "Still missing: bio, contact")
}

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSections([]string{"About Me", "Work Experience"})

	out := buf.String()
	assert.Contains(t, out, "1. About Me")
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "work-experience.html")
}

func TestPrintFiles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	state := session.New()
	p.PrintFiles(state)
	assert.Contains(t, buf.String(), "(none yet)")

	buf.Reset()
	home := state.Page("About Me")
	home.HTML = "<html></html>"
	home.CSS = "body{}"
	home.JS = "void 0;"
	p.PrintFiles(state)
	assert.Contains(t, buf.String(), "index.html")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHistory([]history.Entry{
		{Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), Name: "home.create"},
		{Timestamp: time.Date(2026, 3, 1, 9, 31, 0, 0, time.UTC), Name: "shared.update", Err: "failed"},
	})

	out := buf.String()
	assert.Contains(t, out, "✓ 09:30:00  home.create")
	assert.Contains(t, out, "✗ 09:31:00  shared.update")
}
