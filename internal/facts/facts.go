// Package facts holds the personal details extracted from a resume and
// tracks which required details are still missing before a website can
// be generated.
package facts

import "strings"

// Facts are the personal details every generated site needs.
type Facts struct {
	Name    string
	Role    string
	Bio     string
	Contact string
}

// requiredOrder is the order in which missing details are reported and
// requested from the user.
var requiredOrder = []struct {
	field string
	get   func(Facts) string
}{
	{"name", func(f Facts) string { return f.Name }},
	{"role", func(f Facts) string { return f.Role }},
	{"bio", func(f Facts) string { return f.Bio }},
	{"contact", func(f Facts) string { return f.Contact }},
}

// Missing returns the names of required fields that are still empty,
// in the order they should be requested.
func (f Facts) Missing() []string {
	var missing []string
	for _, r := range requiredOrder {
		if strings.TrimSpace(r.get(f)) == "" {
			missing = append(missing, r.field)
		}
	}
	return missing
}

// Complete reports whether every required field is present.
func (f Facts) Complete() bool {
	return len(f.Missing()) == 0
}

// Merge copies non-empty fields from other into f. Existing values are
// only replaced when other provides a non-empty value.
func (f *Facts) Merge(other Facts) {
	if v := strings.TrimSpace(other.Name); v != "" {
		f.Name = v
	}
	if v := strings.TrimSpace(other.Role); v != "" {
		f.Role = v
	}
	if v := strings.TrimSpace(other.Bio); v != "" {
		f.Bio = v
	}
	if v := strings.TrimSpace(other.Contact); v != "" {
		f.Contact = v
	}
}

// fieldPrompts are the clarification questions asked for each missing field.
var fieldPrompts = map[string]string{
	"name":    "What is your full name?",
	"role":    "What is your current role or profession?",
	"bio":     "Could you share a one-line bio describing what you do?",
	"contact": "How should visitors contact you (email, phone, or a profile link)?",
}

// PromptForMissing returns the clarification question for the first
// missing field, or "" when nothing is missing.
func (f Facts) PromptForMissing() string {
	missing := f.Missing()
	if len(missing) == 0 {
		return ""
	}
	return fieldPrompts[missing[0]]
}
