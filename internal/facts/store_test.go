package facts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/llm/llmtest"
)

const sampleResume = `Jordan Lee
jordan@example.com | 555-0100

Education
M.S. Computer Science, State University, 2024-present

Experience
Software Engineer at Initech, 2021-2024
`

func TestIngestResumeParsesLineFormat(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			"name: Jordan Lee\nrole: M.S. Computer Science Student at State University\ncontact: jordan@example.com, 555-0100\nsections: Education, Experience, Skills",
			"Graduate student building backend systems.",
		},
	}

	s := NewStore()
	require.NoError(t, s.IngestResume(context.Background(), client, sampleResume))

	assert.Equal(t, "Jordan Lee", s.Facts.Name)
	assert.Equal(t, "M.S. Computer Science Student at State University", s.Facts.Role)
	assert.Equal(t, "jordan@example.com, 555-0100", s.Facts.Contact)
	assert.Equal(t, "Graduate student building backend systems.", s.Facts.Bio)
	assert.Equal(t, []string{"About Me", "Education", "Experience", "Skills"}, s.Sections)
	assert.Len(t, client.Calls, 2)
}

func TestIngestResumeRetriesEmptyRole(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			"name: Jordan Lee\nrole:\ncontact: jordan@example.com\nsections: Education",
			"Software Engineer at Initech",
			"Engineer who ships.",
		},
	}

	s := NewStore()
	require.NoError(t, s.IngestResume(context.Background(), client, sampleResume))

	assert.Equal(t, "Software Engineer at Initech", s.Facts.Role)
	// broad parse, role retry, bio summary
	assert.Len(t, client.Calls, 3)
}

func TestIngestResumeNoRetryWhenRolePresent(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			"name: Jordan Lee\nrole: Software Engineer at Initech\ncontact: jordan@example.com\nsections: Education",
			"Engineer who ships.",
		},
	}

	s := NewStore()
	require.NoError(t, s.IngestResume(context.Background(), client, sampleResume))
	assert.Len(t, client.Calls, 2)
}

func TestIngestResumeNavSectionFallback(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			"name: Jordan Lee\nrole: Engineer at Initech\ncontact: jordan@example.com",
			"Engineer who ships.",
			"About Me\nEducation\nOpen Source",
		},
	}

	s := NewStore()
	require.NoError(t, s.IngestResume(context.Background(), client, sampleResume))

	// broad parse, bio summary, then the dedicated section pass
	require.Len(t, client.Calls, 3)
	assert.Contains(t, client.LastUserContent(), "website navigation")
	assert.Equal(t, []string{"About Me", "Education", "Open Source"}, s.Sections)
}

func TestIngestResumeDefaultsSections(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			"name: Jordan Lee\nrole: Engineer at Initech\ncontact: jordan@example.com",
			"Engineer who ships.",
			"", // the section pass found nothing either
		},
	}

	s := NewStore()
	require.NoError(t, s.IngestResume(context.Background(), client, sampleResume))
	assert.Equal(t, []string{"About Me", "Education", "Experience", "Skills", "Projects"}, s.Sections)
}

func TestIngestClarificationMergesNonEmpty(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			`{"name": null, "role": "Data Scientist at Hooli", "bio": null, "contact": "jl@example.com"}`,
		},
	}

	s := NewStore()
	s.Facts = Facts{Name: "Jordan Lee", Bio: "Existing bio"}
	require.NoError(t, s.IngestClarification(context.Background(), client, "I work at Hooli now, reach me at jl@example.com"))

	assert.Equal(t, "Jordan Lee", s.Facts.Name)
	assert.Equal(t, "Data Scientist at Hooli", s.Facts.Role)
	assert.Equal(t, "Existing bio", s.Facts.Bio)
	assert.Equal(t, "jl@example.com", s.Facts.Contact)
}

func TestSectionContentValidatesAndCaches(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			`{"entries": [{"institution": "State University", "degree": "M.S. Computer Science", "location": "Springfield", "dates": "2024-present", "achievements": ["GPA 3.9"]}]}`,
		},
	}

	s := NewStore()
	s.Resume = sampleResume

	content, err := s.SectionContent(context.Background(), client, "Education")
	require.NoError(t, err)
	assert.Contains(t, string(content), "State University")

	// cached, no second model call
	again, err := s.SectionContent(context.Background(), client, "Education")
	require.NoError(t, err)
	assert.Equal(t, content, again)
	assert.Len(t, client.Calls, 1)
	assert.True(t, client.Calls[0].JSONMode)
}

func TestSectionContentRejectsSchemaViolation(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			`{"entries": [{"degree": "M.S."}]}`,
		},
	}

	s := NewStore()
	s.Resume = sampleResume

	_, err := s.SectionContent(context.Background(), client, "Education")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Education", verr.Section)
}

func TestSectionContentGenericSchema(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{
			"```json\n{\"entries\": [{\"title\": \"Distributed cache\", \"description\": \"LRU cache in Go\", \"details\": [\"10k rps\"]}]}\n```",
		},
	}

	s := NewStore()
	s.Resume = sampleResume

	content, err := s.SectionContent(context.Background(), client, "Projects")
	require.NoError(t, err)
	assert.Contains(t, string(content), "Distributed cache")
	assert.True(t, strings.Contains(client.Calls[0].Messages[1].Content, "Projects"))
}

func TestParseResumeReplyIgnoresNoise(t *testing.T) {
	f, sections := parseResumeReply("Here you go:\nName: Ada Lovelace\nROLE: Analyst at Babbage & Co\nnoise line\ncontact: ada@example.com\nsections: Education , , Skills")
	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Equal(t, "Analyst at Babbage & Co", f.Role)
	assert.Equal(t, []string{"Education", "Skills"}, sections)
}

var _ llm.Client = (*llmtest.ScriptedClient)(nil)
