package facts

import (
	"context"
	"embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/prompts"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Store accumulates everything known about one user: the raw resume,
// the extracted facts, the navigation sections, and schema-validated
// per-section content. A Store belongs to one session and is never
// shared across users.
type Store struct {
	Resume   string
	Facts    Facts
	Sections []string

	// mu guards content; section pages extract content concurrently.
	mu      sync.Mutex
	content map[string]json.RawMessage
}

// NewStore returns an empty store with the default sections.
func NewStore() *Store {
	return &Store{
		Sections: NormalizeSections(DefaultSections),
		content:  make(map[string]json.RawMessage),
	}
}

// IngestResume extracts facts and sections from resume text. A second,
// narrower extraction pass runs when the first leaves the role empty,
// and the bio comes from a dedicated summary call.
func (s *Store) IngestResume(ctx context.Context, client llm.Client, resume string) error {
	s.Resume = resume

	reply, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("facts.json", "parse-resume-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("facts.json", "parse-resume"),
				map[string]string{"Resume": resume})},
		},
		Tier: llm.TierLite,
	})
	if err != nil {
		return err
	}

	parsed, sections := parseResumeReply(reply)
	s.Facts.Merge(parsed)

	if strings.TrimSpace(s.Facts.Role) == "" {
		role, err := s.extractRole(ctx, client, resume)
		if err != nil {
			return err
		}
		s.Facts.Role = role
	}

	if strings.TrimSpace(s.Facts.Bio) == "" {
		bio, err := client.Complete(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: prompts.MustGet("facts.json", "summarize-bio-system")},
				{Role: llm.RoleUser, Content: prompts.Format(
					prompts.MustGet("facts.json", "summarize-bio"),
					map[string]string{"Resume": resume})},
			},
			Tier: llm.TierLite,
		})
		if err != nil {
			return err
		}
		s.Facts.Bio = firstLine(bio)
	}

	if len(sections) == 0 {
		if sections, err = s.parseNavSections(ctx, client, resume); err != nil {
			return err
		}
	}
	if len(sections) == 0 {
		sections = DefaultSections
	}
	s.Sections = NormalizeSections(sections)
	return nil
}

// parseNavSections is the dedicated section pass used when the broad
// resume parse comes back without a sections line.
func (s *Store) parseNavSections(ctx context.Context, client llm.Client, resume string) ([]string, error) {
	reply, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("facts.json", "parse-nav-sections-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("facts.json", "parse-nav-sections"),
				map[string]string{"Resume": resume})},
		},
		Tier: llm.TierLite,
	})
	if err != nil {
		return nil, err
	}

	var sections []string
	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sections = append(sections, line)
		}
	}
	return sections, nil
}

// extractRole is the focused second pass used when the broad resume
// parse comes back without a role.
func (s *Store) extractRole(ctx context.Context, client llm.Client, resume string) (string, error) {
	reply, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("facts.json", "extract-role-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("facts.json", "extract-role"),
				map[string]string{"Resume": resume})},
		},
		Tier: llm.TierLite,
	})
	if err != nil {
		return "", err
	}
	return firstLine(reply), nil
}

// clarification mirrors the JSON shape the clarification prompt asks for.
type clarification struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Bio     *string `json:"bio"`
	Contact *string `json:"contact"`
}

// IngestClarification extracts facts from a free-form user message and
// merges any non-empty values into the store.
func (s *Store) IngestClarification(ctx context.Context, client llm.Client, message string) error {
	reply, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("facts.json", "parse-clarification-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("facts.json", "parse-clarification"),
				map[string]string{"Input": message})},
		},
		JSONMode: true,
		Tier:     llm.TierLite,
	})
	if err != nil {
		return err
	}

	var c clarification
	if err := extract.Unmarshal(reply, &c); err != nil {
		return err
	}
	s.Facts.Merge(Facts{
		Name:    deref(c.Name),
		Role:    deref(c.Role),
		Bio:     deref(c.Bio),
		Contact: deref(c.Contact),
	})
	return nil
}

// SectionContent returns schema-validated content for a section,
// extracting it from the resume on first use. Education has its own
// schema; every other section uses the generic entry shape.
func (s *Store) SectionContent(ctx context.Context, client llm.Client, section string) (json.RawMessage, error) {
	s.mu.Lock()
	cached, ok := s.content[section]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	schema, err := schemaFor(section)
	if err != nil {
		return nil, err
	}

	reply, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.MustGet("facts.json", "section-content-system")},
			{Role: llm.RoleUser, Content: prompts.Format(
				prompts.MustGet("facts.json", "section-content"),
				map[string]string{
					"Section": section,
					"Schema":  string(schema),
					"Resume":  s.Resume,
				})},
		},
		JSONMode: true,
		Tier:     llm.TierStandard,
	})
	if err != nil {
		return nil, err
	}

	doc, err := extract.JSON(reply)
	if err != nil {
		return nil, err
	}
	if err := validateAgainst(schema, doc, section); err != nil {
		return nil, err
	}

	raw := json.RawMessage(doc)
	s.SetSectionContent(section, raw)
	return raw, nil
}

// SetSectionContent stores pre-validated content, used when restoring a
// session from persistence.
func (s *Store) SetSectionContent(section string, content json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		s.content = make(map[string]json.RawMessage)
	}
	s.content[section] = content
}

func schemaFor(section string) ([]byte, error) {
	name := "schemas/generic.json"
	if strings.EqualFold(strings.TrimSpace(section), "Education") {
		name = "schemas/education.json"
	}
	return schemaFiles.ReadFile(name)
}

func validateAgainst(schema []byte, doc, section string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return &ValidationError{Section: section, Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Section: section, Problems: problems}
}

// parseResumeReply reads the line-oriented "name:/role:/contact:/sections:"
// reply format. Unknown lines are ignored.
func parseResumeReply(reply string) (Facts, []string) {
	var f Facts
	var sections []string

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			f.Name = value
		case "role":
			f.Role = value
		case "contact":
			f.Contact = value
		case "sections":
			for _, s := range strings.Split(value, ",") {
				if s = strings.TrimSpace(s); s != "" {
					sections = append(sections, s)
				}
			}
		}
	}
	return f, sections
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
