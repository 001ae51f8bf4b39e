// Package server exposes the chat workspace over HTTP: session CRUD,
// message sending, preferences, and the analytics dashboard.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vedantk/helixar-go/internal/agent"
	"github.com/vedantk/helixar-go/internal/dashboard"
	"github.com/vedantk/helixar-go/internal/llm"
	"github.com/vedantk/helixar-go/internal/logger"
	"github.com/vedantk/helixar-go/internal/session"
	"github.com/vedantk/helixar-go/internal/storage"
)

// DashboardFetcher fetches the adapted analytics payload.
type DashboardFetcher interface {
	Fetch(ctx context.Context) (dashboard.Data, error)
}

// Server wires the session store, the agent, durable storage, and the
// dashboard client behind a mux router.
type Server struct {
	store     *session.Store
	agent     *agent.Agent
	persist   *storage.Store
	dash      DashboardFetcher
	llmClient llm.Client
	router    *mux.Router
}

// New builds the server and registers all routes.
func New(store *session.Store, ag *agent.Agent, persist *storage.Store, dash DashboardFetcher, llmClient llm.Client) *Server {
	s := &Server{
		store:     store,
		agent:     ag,
		persist:   persist,
		dash:      dash,
		llmClient: llmClient,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleCreateDraft).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.handleRenameSession).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/select", s.handleSelectSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/messages", s.handleSendMessage).Methods(http.MethodPost)

	api.HandleFunc("/preferences", s.handleGetPreferences).Methods(http.MethodGet)
	api.HandleFunc("/preferences", s.handlePutPreferences).Methods(http.MethodPut)

	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/insights", s.handleInsights).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// sessionsResponse is the full workspace state the sidebar renders.
type sessionsResponse struct {
	Sessions  []session.Session `json:"sessions"`
	CurrentID string            `json:"currentId"`
	Draft     *session.Session  `json:"draft,omitempty"`
	Typing    bool              `json:"typing"`
}

func (s *Server) sessionsState() sessionsResponse {
	resp := sessionsResponse{
		Sessions:  s.store.Sessions(),
		CurrentID: s.store.CurrentID(),
		Typing:    s.agent.Typing(),
	}
	if draft, ok := s.store.Draft(); ok {
		resp.Draft = &draft
	}
	return resp
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionsState())
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	draft := s.store.CreateDraft()
	writeJSON(w, http.StatusCreated, draft)
}

func (s *Server) handleSelectSession(w http.ResponseWriter, r *http.Request) {
	s.store.Select(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, s.sessionsState())
}

func (s *Server) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.store.Rename(mux.Vars(r)["id"], body.Title)
	s.saveSessions()
	writeJSON(w, http.StatusOK, s.sessionsState())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(mux.Vars(r)["id"])
	s.saveSessions()
	writeJSON(w, http.StatusOK, s.sessionsState())
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	id := mux.Vars(r)["id"]
	reply, err := s.agent.Send(r.Context(), id, body.Text)
	switch {
	case errors.Is(err, session.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message is empty")
		return
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, "model call failed")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Reply string           `json:"reply"`
		State sessionsResponse `json:"state"`
	}{Reply: reply, State: s.sessionsState()})
}

// preferences is the persisted theme and accent pair.
type preferences struct {
	Theme  string `json:"theme"`
	Accent string `json:"accent"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	theme, err := s.persist.Theme()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading preferences")
		return
	}
	accent, err := s.persist.Accent()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading preferences")
		return
	}
	writeJSON(w, http.StatusOK, preferences{Theme: theme, Accent: accent})
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var body preferences
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Theme != "dark" && body.Theme != "light" {
		writeError(w, http.StatusBadRequest, "theme must be dark or light")
		return
	}
	if err := s.persist.SetTheme(body.Theme); err != nil {
		writeError(w, http.StatusInternalServerError, "saving preferences")
		return
	}
	if err := s.persist.SetAccent(body.Accent); err != nil {
		writeError(w, http.StatusInternalServerError, "saving preferences")
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := s.dash.Fetch(r.Context())
	if err != nil {
		logger.L.Error("dashboard fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "dashboard backend unavailable")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	data, err := s.dash.Fetch(r.Context())
	if err != nil {
		logger.L.Error("dashboard fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "dashboard backend unavailable")
		return
	}
	text := dashboard.AnalyzePerformance(r.Context(), s.llmClient, data)
	writeJSON(w, http.StatusOK, struct {
		Insights string `json:"insights"`
	}{Insights: text})
}

// saveSessions pushes the current collection to durable storage.
// Persistence failures are logged, not surfaced; in-memory state already
// changed and the next successful save catches up.
func (s *Server) saveSessions() {
	if err := s.persist.SaveSessions(s.store.Sessions()); err != nil {
		logger.L.Error("persisting sessions", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
