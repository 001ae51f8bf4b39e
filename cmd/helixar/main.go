package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vedantk/helixar-go/internal/agent"
	"github.com/vedantk/helixar-go/internal/config"
	"github.com/vedantk/helixar-go/internal/dashboard"
	"github.com/vedantk/helixar-go/internal/llm"
	"github.com/vedantk/helixar-go/internal/logger"
	"github.com/vedantk/helixar-go/internal/server"
	"github.com/vedantk/helixar-go/internal/session"
	"github.com/vedantk/helixar-go/internal/storage"
)

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	persist, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.L.Error("failed to open storage", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer persist.Close()

	sessions, currentID, err := persist.Bootstrap()
	if err != nil {
		logger.L.Error("failed to bootstrap sessions", "error", err)
		os.Exit(1)
	}

	store := session.NewStore()
	store.Replace(sessions, currentID)
	if currentID == "" {
		store.CreateDraft()
	}
	if err := persist.SaveSessions(store.Sessions()); err != nil {
		logger.L.Error("failed to persist seeded sessions", "error", err)
	}

	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.L.Error("failed to initialize model client", "provider", cfg.LLM.Provider, "error", err)
		os.Exit(1)
	}

	ag := agent.New(llmClient, store, persist)
	dash := dashboard.NewClient(cfg.Dashboard.BackendURL)
	srv := server.New(store, ag, persist, dash, llmClient)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", serverAddr, "sessions", len(store.Sessions()))
	if err := http.ListenAndServe(serverAddr, srv); err != nil {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
