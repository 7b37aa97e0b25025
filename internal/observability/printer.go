// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/history"
	"github.com/jkoster/webfolio/internal/session"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow caps list output in boxes
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFacts outputs the extracted personal details and what is still
// missing.
func (p *Printer) PrintFacts(f facts.Facts) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(f.Name)))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", orDash(f.Role)))
	sb.WriteString(fmt.Sprintf("Bio:      %s\n", orDash(f.Bio)))
	sb.WriteString(fmt.Sprintf("Contact:  %s", orDash(f.Contact)))

	if missing := f.Missing(); len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("\n\nStill missing: %s", strings.Join(missing, ", ")))
	}
	p.printBox("Extracted Facts", sb.String())
}

// PrintSections outputs the site's navigation sections in order.
func (p *Printer) PrintSections(sections []string) {
	var sb strings.Builder
	for i, section := range sections {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(sections)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s → %s\n", i+1, section, facts.SectionPage(section)))
	}
	p.printBox("Site Sections", strings.TrimRight(sb.String(), "\n"))
}

// PrintFiles outputs the session's publishable files with their sizes.
func (p *Printer) PrintFiles(state *session.State) {
	files := state.FileMap()
	if len(files) == 0 {
		p.printBox("Generated Files", "(none yet)")
		return
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%-24s %6d bytes\n", name, len(files[name])))
	}
	p.printBox("Generated Files", strings.TrimRight(sb.String(), "\n"))
}

// PrintHistory outputs a session's recorded actions.
func (p *Printer) PrintHistory(entries []history.Entry) {
	if len(entries) == 0 {
		p.printBox("Action History", "(no actions recorded)")
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		mark := "✓"
		if e.Err != "" {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", mark, e.Timestamp.Format("15:04:05"), e.Name))
	}
	p.printBox("Action History", strings.TrimRight(sb.String(), "\n"))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not set)"
	}
	return s
}
