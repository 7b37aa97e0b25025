package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ClearCache()

	prompt, err := Get("facts.json", "parse-resume")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Resume}}")
	assert.Contains(t, prompt, "name:")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("facts.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "anything")
	require.Error(t, err)
}

func TestMustGetPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("facts.json", "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	got := Format("Hello {{.Name}}, you are a {{.Role}}.", map[string]string{
		"Name": "Ada",
		"Role": "compiler",
	})
	assert.Equal(t, "Hello Ada, you are a compiler.", got)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	got := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x {{.Unknown}}", got)
}

// Every shipped prompt file must parse and every templated prompt must keep
// its placeholders well formed.
func TestAllPromptFilesParse(t *testing.T) {
	files := []string{
		"facts.json",
		"router.json",
		"pages.json",
		"shared.json",
		"update.json",
		"readme.json",
		"profile.json",
	}

	for _, f := range files {
		t.Run(f, func(t *testing.T) {
			keys, err := List(f)
			require.NoError(t, err)
			require.NotEmpty(t, keys)

			for _, key := range keys {
				prompt, err := Get(f, key)
				require.NoError(t, err)
				assert.NotEmpty(t, prompt)
				assert.Equal(t,
					strings.Count(prompt, "{{"),
					strings.Count(prompt, "}}"),
					"unbalanced placeholder in %s/%s", f, key)
			}
		})
	}
}
