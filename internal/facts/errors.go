package facts

import (
	"fmt"
	"strings"
)

// ParseError indicates the model reply for a fact-extraction call could
// not be read in the expected line format.
type ParseError struct {
	Field string
	Raw   string
}

func (e *ParseError) Error() string {
	preview := e.Raw
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}
	return fmt.Sprintf("facts: could not parse %s from model reply: %q", e.Field, preview)
}

// ValidationError indicates extracted section content did not satisfy
// the section's schema.
type ValidationError struct {
	Section  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("facts: %s content failed validation: %s",
		e.Section, strings.Join(e.Problems, "; "))
}
