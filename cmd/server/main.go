package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/proposaltoc/internal/api"
	"github.com/dgallion1/proposaltoc/internal/catalog"
	"github.com/dgallion1/proposaltoc/internal/config"
	"github.com/dgallion1/proposaltoc/internal/generation"
	"github.com/dgallion1/proposaltoc/internal/session"
	"github.com/dgallion1/proposaltoc/internal/suggest"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := catalog.New()
	if err != nil {
		log.Error("load template catalog", "error", err)
		os.Exit(1)
	}

	// Initialize clients.
	gen := generation.NewClient(cfg.GenerationURL, cfg.GenerationAPIKey)
	var (
		claude    *suggest.ClaudeClient
		suggester *suggest.Suggester
	)
	if cfg.SuggestionsEnabled() {
		claude = suggest.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		suggester = suggest.NewSuggester(claude, suggest.NewLLMStats(time.Hour), log)
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, suggestion endpoints disabled")
	}

	// Initialize sessions.
	sessions := session.NewManager(cfg, log)
	sessions.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(sessions, cat, suggester, gen, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		sessions.Stop()
		gen.Close()
		if claude != nil {
			claude.Close()
		}
	}()

	log.Info("starting proposaltoc", "port", cfg.Port, "history_limit", cfg.HistoryLimit, "suggestions", cfg.SuggestionsEnabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
