package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedantk/helixar-go/internal/agent"
	"github.com/vedantk/helixar-go/internal/dashboard"
	"github.com/vedantk/helixar-go/internal/session"
	"github.com/vedantk/helixar-go/internal/storage"
)

type mockLLM struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return m.CompleteFunc(ctx, prompt)
}

type mockDash struct {
	FetchFunc func(ctx context.Context) (dashboard.Data, error)
}

func (m *mockDash) Fetch(ctx context.Context) (dashboard.Data, error) {
	return m.FetchFunc(ctx)
}

func newTestServer(t *testing.T, llmClient *mockLLM, dash *mockDash) (*Server, *session.Store) {
	t.Helper()

	persist, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening storage: %v", err)
	}
	t.Cleanup(func() { _ = persist.Close() })

	store := session.NewStore()
	sessions, currentID, err := persist.Bootstrap()
	require.NoError(t, err)
	store.Replace(sessions, currentID)

	if llmClient == nil {
		llmClient = &mockLLM{CompleteFunc: func(context.Context, string) (string, error) {
			return "ok", nil
		}}
	}
	if dash == nil {
		dash = &mockDash{FetchFunc: func(context.Context) (dashboard.Data, error) {
			return dashboard.Data{}, nil
		}}
	}

	ag := agent.New(llmClient, store, persist)
	return New(store, ag, persist, dash, llmClient), store
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestListSessions_Seeded(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := doJSON(t, srv, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 3)
	require.Equal(t, resp.Sessions[0].ID, resp.CurrentID)
	require.False(t, resp.Typing)
}

func TestCreateDraft_SelectsIt(t *testing.T) {
	srv, store := newTestServer(t, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var draft session.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	require.Equal(t, "New chat", draft.Title)
	require.Equal(t, draft.ID, store.CurrentID())
}

func TestSendMessage(t *testing.T) {
	llmClient := &mockLLM{CompleteFunc: func(context.Context, string) (string, error) {
		return "hello back", nil
	}}
	srv, store := newTestServer(t, llmClient, nil)
	id := store.CurrentID()

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reply string           `json:"reply"`
		State sessionsResponse `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "hello back", resp.Reply)

	sess, ok := store.Get(id)
	require.True(t, ok)
	last := sess.Messages[len(sess.Messages)-1]
	require.Equal(t, session.RoleAssistant, last.Role)
	require.Equal(t, "hello back", last.Content)
}

func TestSendMessage_EmptyText(t *testing.T) {
	srv, store := newTestServer(t, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+store.CurrentID()+"/messages", map[string]string{"text": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessage_UnknownSession(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/nope/messages", map[string]string{"text": "hi"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessage_ModelFailure(t *testing.T) {
	llmClient := &mockLLM{CompleteFunc: func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	srv, store := newTestServer(t, llmClient, nil)
	id := store.CurrentID()

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "hi"})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// The user message stays; no reply was appended.
	sess, ok := store.Get(id)
	require.True(t, ok)
	require.Equal(t, session.RoleUser, sess.Messages[len(sess.Messages)-1].Role)
}

func TestRenameAndDelete(t *testing.T) {
	srv, store := newTestServer(t, nil, nil)
	id := store.CurrentID()

	rec := doJSON(t, srv, http.MethodPatch, "/api/sessions/"+id, map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess, _ := store.Get(id)
	require.Equal(t, "Renamed", sess.Title)

	rec = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, ok := store.Get(id)
	require.False(t, ok)
	require.NotEqual(t, id, store.CurrentID())
}

func TestSelectSession(t *testing.T) {
	srv, store := newTestServer(t, nil, nil)
	sessions := store.Sessions()
	target := sessions[len(sessions)-1].ID

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+target+"/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, target, store.CurrentID())
}

func TestPreferences_DefaultsAndUpdate(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := doJSON(t, srv, http.MethodGet, "/api/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var prefs preferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	require.Equal(t, "dark", prefs.Theme)
	require.Equal(t, "#b33a72", prefs.Accent)

	rec = doJSON(t, srv, http.MethodPut, "/api/preferences", preferences{Theme: "light", Accent: "#112233"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/preferences", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	require.Equal(t, "light", prefs.Theme)
	require.Equal(t, "#112233", prefs.Accent)
}

func TestPreferences_RejectsBadTheme(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := doJSON(t, srv, http.MethodPut, "/api/preferences", preferences{Theme: "neon", Accent: "#112233"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	dash := &mockDash{FetchFunc: func(context.Context) (dashboard.Data, error) {
		return dashboard.Data{LastSynced: "2024-05-01T12:00:00Z"}, nil
	}}
	srv, _ := newTestServer(t, nil, dash)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data dashboard.Data
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Equal(t, "2024-05-01T12:00:00Z", data.LastSynced)
}

func TestDashboard_BackendFailure(t *testing.T) {
	dash := &mockDash{FetchFunc: func(context.Context) (dashboard.Data, error) {
		return dashboard.Data{}, errors.New("connection refused")
	}}
	srv, _ := newTestServer(t, nil, dash)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestInsights(t *testing.T) {
	llmClient := &mockLLM{CompleteFunc: func(context.Context, string) (string, error) {
		return "Post more videos.", nil
	}}
	srv, _ := newTestServer(t, llmClient, nil)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard/insights", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Insights string `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Post more videos.", resp.Insights)
}
