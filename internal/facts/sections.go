package facts

import "strings"

// AboutSection is the canonical name of the landing-page section. It is
// always the first navigation entry and always maps to index.html.
const AboutSection = "About Me"

// DefaultSections are used when a resume yields no usable section list.
var DefaultSections = []string{"Education", "Experience", "Skills", "Projects"}

// NormalizeSections cleans a raw section list for use as site navigation:
// list markers are stripped, blanks dropped, duplicates removed case
// insensitively, and About Me is placed first regardless of input. The
// result is stable under repeated normalization.
func NormalizeSections(raw []string) []string {
	out := []string{AboutSection}
	seen := map[string]bool{strings.ToLower(AboutSection): true}

	for _, s := range raw {
		s = stripListMarker(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func stripListMarker(s string) string {
	s = strings.TrimSpace(s)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(s, marker) {
			s = strings.TrimSpace(strings.TrimPrefix(s, marker))
			break
		}
	}
	return strings.Trim(s, "\"")
}

// SectionSlug converts a section name to its page file stem, e.g.
// "Work Experience" becomes "work-experience". About Me maps to "index".
func SectionSlug(section string) string {
	if strings.EqualFold(strings.TrimSpace(section), AboutSection) {
		return "index"
	}
	slug := strings.ToLower(strings.TrimSpace(section))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// SectionPage returns the HTML file name a section's page is written to.
func SectionPage(section string) string {
	return SectionSlug(section) + ".html"
}
