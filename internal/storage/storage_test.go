package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedantk/helixar-go/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "helixar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := []session.Session{
		{
			ID:        "s1",
			Title:     "First",
			UpdatedAt: 1705310090000,
			Messages: []session.Message{
				{ID: "m1", Role: session.RoleUser, Content: "hello", Timestamp: 1705310000000},
				{ID: "m2", Role: session.RoleAssistant, Content: "hi", Timestamp: 1705310001000},
			},
		},
		{ID: "s2", Title: "Second", UpdatedAt: 1705300090000, IsGroup: true, GroupLink: "https://helixar.app/g/abc"},
	}
	require.NoError(t, store.SaveSessions(in))

	out, ok, err := store.LoadSessions()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out, "round trip must preserve ids, titles, messages, and order")
}

func TestSaveSessions_SkipsEmptyCollection(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSessions([]session.Session{{ID: "s1", Title: "Keep me"}}))
	require.NoError(t, store.SaveSessions(nil))

	out, ok, err := store.LoadSessions()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out, 1, "an empty save must not clobber stored sessions")
}

func TestLoadSessions_MalformedStateIsAStartupFault(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Set(KeySessions, "{not json"))

	_, _, err := store.LoadSessions()
	require.Error(t, err)
}

func TestBootstrap_FirstRunSeedsAndSelects(t *testing.T) {
	store := openTestStore(t)

	sessions, currentID, err := store.Bootstrap()
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	require.Equal(t, SeedDesignID, sessions[0].ID)
	require.Equal(t, SeedDevID, sessions[1].ID)
	require.Equal(t, SeedValidationID, sessions[2].ID)
	require.Equal(t, SeedDesignID, currentID)
}

func TestBootstrap_MergesMissingSeedsAtFront(t *testing.T) {
	store := openTestStore(t)

	stored := []session.Session{
		{ID: "user-chat", Title: "My chat", Messages: []session.Message{{ID: "m", Role: session.RoleUser, Content: "x"}}},
		{ID: SeedDevID, Title: "Full Stack Arch (edited)"},
	}
	require.NoError(t, store.SaveSessions(stored))

	sessions, currentID, err := store.Bootstrap()
	require.NoError(t, err)
	require.Len(t, sessions, 4)
	require.Equal(t, SeedDesignID, sessions[0].ID)
	require.Equal(t, SeedValidationID, sessions[1].ID)
	require.Equal(t, "user-chat", sessions[2].ID)
	// The stored copy of a seed wins over the canned one.
	require.Equal(t, "Full Stack Arch (edited)", sessions[3].Title)
	// Selection follows the stored collection, not the merged front.
	require.Equal(t, "user-chat", currentID)
}

func TestBootstrap_EmptyStoredCollection(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Set(KeySessions, "[]"))

	sessions, currentID, err := store.Bootstrap()
	require.NoError(t, err)
	require.Len(t, sessions, 3, "seeds are still merged in")
	require.Empty(t, currentID, "caller resolves the empty selection with a draft")
}

func TestPreferences(t *testing.T) {
	store := openTestStore(t)

	theme, err := store.Theme()
	require.NoError(t, err)
	require.Equal(t, "dark", theme)

	accent, err := store.Accent()
	require.NoError(t, err)
	require.Equal(t, "#b33a72", accent)

	require.NoError(t, store.SetTheme("light"))
	require.NoError(t, store.SetAccent("#00ffcc"))

	theme, err = store.Theme()
	require.NoError(t, err)
	require.Equal(t, "light", theme)

	accent, err = store.Accent()
	require.NoError(t, err)
	require.Equal(t, "#00ffcc", accent)
}
