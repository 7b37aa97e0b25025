package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkoster/webfolio/internal/history"
	"github.com/jkoster/webfolio/internal/session"
)

// testStore connects to the database named by DATABASE_URL, skipping
// when none is configured.
func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping database tests")
	}

	ctx := context.Background()
	s, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func TestSaveAndLoadSession(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	state := session.New()
	state.Facts.Resume = "resume text"
	state.Facts.Facts.Name = "Jordan Lee"
	state.Facts.Facts.Role = "Engineer at Initech"
	state.Facts.Sections = []string{"About Me", "Skills"}

	home := state.Page("About Me")
	home.HTML = "<html></html>"
	home.CSS = "body{}"
	home.JS = "void 0;"

	require.NoError(t, s.SaveSession(ctx, state))

	loaded, err := s.LoadSession(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", loaded.Facts.Facts.Name)
	assert.Equal(t, "resume text", loaded.Facts.Resume)
	assert.Equal(t, []string{"About Me", "Skills"}, loaded.Facts.Sections)
	assert.True(t, loaded.HasPage("About Me"), "saved pages survive the round trip")
	assert.Equal(t, "body{}", loaded.Pages["About Me"].CSS)

	files, err := s.LoadFiles(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", files["index.html"])
	assert.Equal(t, "body{}", files["style.css"])
}

func TestLoadSessionNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.LoadSession(context.Background(), session.New().ID)
	assert.Error(t, err)
}

func TestHistoryRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	state := session.New()
	require.NoError(t, s.SaveSession(ctx, state))

	sink := &HistorySink{Store: s}
	sink.Record(state.ID.String(), history.Entry{
		Timestamp: time.Now().UTC(),
		Name:      "home.create",
		Input:     "build the home page",
	})
	sink.Record(state.ID.String(), history.Entry{
		Timestamp: time.Now().UTC(),
		Name:      "shared.update",
		Input:     "restyle nav",
		Err:       "nav generation failed",
	})

	entries, err := s.History(ctx, state.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "home.create", entries[0].Name)
	assert.Equal(t, "nav generation failed", entries[1].Err)
}

var _ history.Sink = (*HistorySink)(nil)
