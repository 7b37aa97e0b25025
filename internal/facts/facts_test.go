package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingOrder(t *testing.T) {
	tests := []struct {
		name  string
		facts Facts
		want  []string
	}{
		{
			name:  "all missing",
			facts: Facts{},
			want:  []string{"name", "role", "bio", "contact"},
		},
		{
			name:  "whitespace counts as missing",
			facts: Facts{Name: "  ", Role: "Engineer"},
			want:  []string{"name", "bio", "contact"},
		},
		{
			name:  "complete",
			facts: Facts{Name: "Ada", Role: "Engineer", Bio: "Builds things", Contact: "ada@example.com"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.facts.Missing())
		})
	}
}

func TestPromptForMissingAsksFirstField(t *testing.T) {
	f := Facts{Name: "Ada"}
	assert.Equal(t, "What is your current role or profession?", f.PromptForMissing())

	f.Role = "Engineer"
	f.Bio = "Builds things"
	f.Contact = "ada@example.com"
	assert.Empty(t, f.PromptForMissing())
	assert.True(t, f.Complete())
}

func TestMergeKeepsExistingOnEmpty(t *testing.T) {
	f := Facts{Name: "Ada", Bio: "Original bio"}
	f.Merge(Facts{Name: "", Role: "Engineer", Bio: "  "})

	assert.Equal(t, "Ada", f.Name)
	assert.Equal(t, "Engineer", f.Role)
	assert.Equal(t, "Original bio", f.Bio)
}

func TestNormalizeSections(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "about me always first",
			in:   []string{"Education", "Skills"},
			want: []string{"About Me", "Education", "Skills"},
		},
		{
			name: "existing about me deduped case insensitively",
			in:   []string{"Experience", "about me", "ABOUT ME"},
			want: []string{"About Me", "Experience"},
		},
		{
			name: "list markers and blanks stripped",
			in:   []string{"- Education", "* Skills", "• Projects", "", "  "},
			want: []string{"About Me", "Education", "Skills", "Projects"},
		},
		{
			name: "duplicates keep first casing",
			in:   []string{"Skills", "SKILLS", "skills"},
			want: []string{"About Me", "Skills"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSections(tt.in))
		})
	}
}

func TestNormalizeSectionsIdempotent(t *testing.T) {
	once := NormalizeSections([]string{"Education", "About Me", "Skills"})
	twice := NormalizeSections(once)
	assert.Equal(t, once, twice)
}

func TestSectionSlug(t *testing.T) {
	assert.Equal(t, "index", SectionSlug("About Me"))
	assert.Equal(t, "index", SectionSlug("  about me "))
	assert.Equal(t, "work-experience", SectionSlug("Work Experience"))
	assert.Equal(t, "skills", SectionSlug("Skills"))
	assert.Equal(t, "work-experience.html", SectionPage("Work Experience"))
	assert.Equal(t, "index.html", SectionPage("About Me"))
}
