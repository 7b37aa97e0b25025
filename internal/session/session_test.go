package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactSetComplete(t *testing.T) {
	assert.False(t, ArtifactSet{}.Complete())
	assert.False(t, ArtifactSet{HTML: "<p>hi</p>", CSS: "p{}"}.Complete())
	assert.False(t, ArtifactSet{HTML: "<p>hi</p>", CSS: "p{}", JS: "   "}.Complete())
	assert.True(t, ArtifactSet{HTML: "<p>hi</p>", CSS: "p{}", JS: "void 0;"}.Complete())
}

func TestNewSessionsAreIsolated(t *testing.T) {
	a := New()
	b := New()

	assert.NotEqual(t, a.ID, b.ID)

	a.Facts.Facts.Name = "Ada"
	a.Page("About Me").HTML = "<html></html>"

	assert.Empty(t, b.Facts.Facts.Name)
	assert.Empty(t, b.Pages)
}

func TestPageCreatesOnFirstUse(t *testing.T) {
	s := New()
	set := s.Page("Education")
	set.HTML = "<section></section>"

	assert.Same(t, set, s.Page("Education"))
	assert.False(t, s.HasPage("Education"))

	set.CSS = "section{}"
	set.JS = "void 0;"
	assert.True(t, s.HasPage("Education"))
}

func TestFileMapSkipsIncompleteSets(t *testing.T) {
	s := New()
	s.Page("About Me").HTML = "<html></html>" // incomplete, no css/js
	complete := s.Page("Work Experience")
	complete.HTML = "<html></html>"
	complete.CSS = "body{}"
	complete.JS = "void 0;"
	s.SharedCSS = ":root{}"

	files := s.FileMap()

	assert.NotContains(t, files, "index.html")
	assert.Equal(t, "<html></html>", files["work-experience.html"])
	assert.Equal(t, "body{}", files["work-experience.css"])
	assert.Equal(t, "void 0;", files["work-experience.js"])
	assert.Equal(t, ":root{}", files["shared.css"])
	assert.NotContains(t, files, "shared.js")
	assert.NotContains(t, files, "README.md")
}

func TestRestoreFilesRoundTrip(t *testing.T) {
	original := New()
	original.Facts.Sections = []string{"About Me", "Skills"}
	home := original.Page("About Me")
	home.HTML = "<html><body>home</body></html>"
	home.CSS = "body{}"
	home.JS = "void 0;"
	skills := original.Page("Skills")
	skills.HTML = "<html><body>skills</body></html>"
	skills.CSS = "#skills{}"
	skills.JS = "console.log('skills');"
	original.SharedCSS = ":root{}"
	original.NavHTML = `<nav id="site-nav"></nav>`
	original.Readme = "# Jordan"

	restored := New()
	restored.Facts.Sections = original.Facts.Sections
	restored.RestoreFiles(original.FileMap())

	assert.True(t, restored.HasPage("About Me"), "a resumed session keeps its saved pages")
	assert.True(t, restored.HasPage("Skills"))
	assert.Equal(t, home.CSS, restored.Pages["About Me"].CSS)
	assert.Equal(t, skills.JS, restored.Pages["Skills"].JS)
	assert.Equal(t, ":root{}", restored.SharedCSS)
	assert.Equal(t, original.NavHTML, restored.NavHTML)
	assert.Equal(t, "# Jordan", restored.Readme)
	assert.Equal(t, original.FileMap(), restored.FileMap())
}

func TestRestoreFilesIgnoresUnknownNames(t *testing.T) {
	s := New()
	s.RestoreFiles(map[string]string{
		"gallery.html": "<html></html>",
		"notes.txt":    "scratch",
	})
	assert.Empty(t, s.Pages)
}

func TestFileMapAboutSectionIsIndex(t *testing.T) {
	s := New()
	home := s.Page("About Me")
	home.HTML = "<html></html>"
	home.CSS = "body{}"
	home.JS = "void 0;"

	files := s.FileMap()
	assert.Contains(t, files, "index.html")
	assert.Contains(t, files, "style.css")
	assert.Contains(t, files, "script.js")
}
