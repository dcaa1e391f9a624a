package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/message-board/internal/ai"
	"github.com/shinyyama/message-board/internal/config"
	"github.com/shinyyama/message-board/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := server.OpenRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	var drafter ai.ReplyDrafter
	if cfg.GeminiAPIKey != "" {
		drafter = ai.NewGeminiReplyClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	srv := server.New(cfg, repo, drafter)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s (store=%s)", addr, cfg.StoreBackend)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
