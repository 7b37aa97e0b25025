package assemble

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkoster/webfolio/internal/llm/llmtest"
	"github.com/jkoster/webfolio/internal/stage"
)

const skeleton = `<!DOCTYPE html>
<html>
<head><title>Home</title></head>
<body>
<main>
<section id="about"><p>About text</p></section>
</main>
</body>
</html>`

func TestPageInsertsFragmentsBeforeMainClose(t *testing.T) {
	a := &Assembler{}

	page, warnings, err := a.Page(skeleton, []string{
		`<section id="education"><h2>Education</h2></section>`,
		`<section id="skills"><h2>Skills</h2></section>`,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	eduIdx := strings.Index(page, `id="education"`)
	skillsIdx := strings.Index(page, `id="skills"`)
	mainCloseIdx := strings.Index(page, "</main>")
	assert.Greater(t, eduIdx, 0)
	assert.Greater(t, skillsIdx, eduIdx, "fragments keep their order")
	assert.Greater(t, mainCloseIdx, skillsIdx, "fragments land inside main")
}

func TestPageSkipsEmptyFragments(t *testing.T) {
	a := &Assembler{}

	page, warnings, err := a.Page(skeleton, []string{
		"", "   ",
		`<section id="skills"><h2>Skills</h2></section>`,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Contains(t, page, `id="skills"`)
}

func TestPageNoFragmentsReturnsSkeleton(t *testing.T) {
	a := &Assembler{}

	page, warnings, err := a.Page(skeleton, []string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, skeleton, page)
}

func TestPageWithoutMainFallsBackToBody(t *testing.T) {
	a := &Assembler{}
	bare := "<!DOCTYPE html><html><body><p>hi</p></body></html>"

	page, _, err := a.Page(bare, []string{`<section id="skills"></section>`})
	require.NoError(t, err)
	assert.Less(t, strings.Index(page, `id="skills"`), strings.Index(page, "</body>"))
}

func TestPageNoInsertionPointErrors(t *testing.T) {
	a := &Assembler{}

	_, _, err := a.Page("<p>not a document</p>", []string{`<section id="s"></section>`})
	assert.Error(t, err)
}

func TestPageWarnsOnMangledFragment(t *testing.T) {
	a := &Assembler{}

	// an unclosed comment swallows the fragment content when parsed
	_, warnings, err := a.Page(skeleton, []string{`<!-- <section id="education"></section>`})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "education")
}

func TestStylesheetMergeShortCircuits(t *testing.T) {
	client := &llmtest.ScriptedClient{}
	a := &Assembler{Runner: &stage.Runner{Client: client}}

	got, err := a.Stylesheet(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = a.Stylesheet(context.Background(), []string{"", "body{margin:0}"})
	require.NoError(t, err)
	assert.Equal(t, "body{margin:0}", got)
	assert.Empty(t, client.Calls, "single fragment needs no model call")
}

func TestStylesheetMergesThroughModel(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{"```css\nbody{margin:0}\nh1{color:navy}\n```"},
	}
	a := &Assembler{Runner: &stage.Runner{Client: client}}

	got, err := a.Stylesheet(context.Background(), []string{"body{margin:0}", "h1{color:navy}"})
	require.NoError(t, err)
	assert.Equal(t, "body{margin:0}\nh1{color:navy}", got)
	require.Len(t, client.Calls, 1)
	assert.Contains(t, client.LastUserContent(), "Fragment 2")
}

func TestScriptMergesThroughModel(t *testing.T) {
	client := &llmtest.ScriptedClient{
		Responses: []string{"```javascript\nconsole.log(1);\nconsole.log(2);\n```"},
	}
	a := &Assembler{Runner: &stage.Runner{Client: client}}

	got, err := a.Script(context.Background(), []string{"console.log(1);", "console.log(2);"})
	require.NoError(t, err)
	assert.Contains(t, got, "console.log(1);")
}

