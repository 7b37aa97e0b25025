// Package session holds all per-user state for one website-building
// conversation. Every piece of mutable state lives on a State value that
// is created per session and passed explicitly; nothing in this module
// is process-global, so concurrent sessions never observe each other.
package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jkoster/webfolio/internal/facts"
)

// ArtifactSet is the generated triple backing one page. A set is complete
// only when all three parts are present; FileMap skips incomplete sets so
// a half-generated page is never published.
type ArtifactSet struct {
	HTML string
	CSS  string
	JS   string
}

// Complete reports whether every part of the set has content.
func (a ArtifactSet) Complete() bool {
	return strings.TrimSpace(a.HTML) != "" &&
		strings.TrimSpace(a.CSS) != "" &&
		strings.TrimSpace(a.JS) != ""
}

// State is the whole of one session's accumulated work: extracted facts,
// navigation structure, shared assets, and per-page artifacts.
type State struct {
	ID    uuid.UUID
	Facts *facts.Store

	// mu guards Pages; section pages are generated concurrently.
	mu sync.Mutex

	// Navigation and shared assets used by every page.
	NavHTML   string
	NavCSS    string
	NavJS     string
	SharedCSS string
	SharedJS  string

	// Pages maps a section name to its generated artifacts. The home
	// page lives under facts.AboutSection.
	Pages map[string]*ArtifactSet

	// Readme is the GitHub profile README, when generated.
	Readme string
}

// New returns an empty session with a fresh ID and fact store.
func New() *State {
	return &State{
		ID:    uuid.New(),
		Facts: facts.NewStore(),
		Pages: make(map[string]*ArtifactSet),
	}
}

// Page returns the artifact set for a section, creating it on first use.
func (s *State) Page(section string) *ArtifactSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Pages == nil {
		s.Pages = make(map[string]*ArtifactSet)
	}
	set, ok := s.Pages[section]
	if !ok {
		set = &ArtifactSet{}
		s.Pages[section] = set
	}
	return set
}

// HasPage reports whether a section already has a complete page.
func (s *State) HasPage(section string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.Pages[section]
	return ok && set.Complete()
}

// FileMap flattens the session into publishable files keyed by name.
// Incomplete page sets are skipped, as are empty shared assets.
func (s *State) FileMap() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := make(map[string]string)

	for section, set := range s.Pages {
		if !set.Complete() {
			continue
		}
		slug := facts.SectionSlug(section)
		files[slug+".html"] = set.HTML
		if slug == "index" {
			// the home page links style.css and script.js by convention
			files["style.css"] = set.CSS
			files["script.js"] = set.JS
		} else {
			files[slug+".css"] = set.CSS
			files[slug+".js"] = set.JS
		}
	}

	addIfPresent(files, "shared.css", s.SharedCSS)
	addIfPresent(files, "shared.js", s.SharedJS)
	addIfPresent(files, "navigation.html", s.NavHTML)
	addIfPresent(files, "navigation.css", s.NavCSS)
	addIfPresent(files, "navigation.js", s.NavJS)
	addIfPresent(files, "README.md", s.Readme)

	return files
}

// RestoreFiles repopulates the session's artifacts from a saved file
// map, inverting FileMap. Page files are matched by slug against the
// session's section list, so facts and sections must be restored first.
// Unrecognized names are ignored.
func (s *State) RestoreFiles(files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SharedCSS = files["shared.css"]
	s.SharedJS = files["shared.js"]
	s.NavHTML = files["navigation.html"]
	s.NavCSS = files["navigation.css"]
	s.NavJS = files["navigation.js"]
	s.Readme = files["README.md"]

	sections := map[string]string{
		facts.SectionSlug(facts.AboutSection): facts.AboutSection,
	}
	for _, section := range s.Facts.Sections {
		sections[facts.SectionSlug(section)] = section
	}

	if s.Pages == nil {
		s.Pages = make(map[string]*ArtifactSet)
	}
	for name, content := range files {
		slug, ok := strings.CutSuffix(name, ".html")
		if !ok || slug == "navigation" {
			continue
		}
		section, ok := sections[slug]
		if !ok {
			continue
		}
		set := &ArtifactSet{HTML: content}
		if slug == "index" {
			set.CSS = files["style.css"]
			set.JS = files["script.js"]
		} else {
			set.CSS = files[slug+".css"]
			set.JS = files[slug+".js"]
		}
		s.Pages[section] = set
	}
}

// FileNames returns the names from FileMap, for dependency analysis.
func (s *State) FileNames() []string {
	m := s.FileMap()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

func addIfPresent(files map[string]string, name, content string) {
	if strings.TrimSpace(content) != "" {
		files[name] = content
	}
}
