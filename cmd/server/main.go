package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gitea.jw6.us/james/elternrat/internal/api"
	"gitea.jw6.us/james/elternrat/internal/config"
	httpserver "gitea.jw6.us/james/elternrat/internal/http"
	"gitea.jw6.us/james/elternrat/internal/store"
)

func main() {
	_ = godotenv.Load()

	log.Println("Starting Elternrat server...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		gw     store.Gateway
		pinger httpserver.Pinger
	)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		sqliteGw, err := store.OpenSQLiteGateway(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("failed to open sqlite storage: %v", err)
		}
		defer sqliteGw.Close()
		gw, pinger = sqliteGw, sqliteGw
	default:
		gw = &store.FileGateway{Path: cfg.Storage.Path}
	}

	st := store.Open(gw)
	handler := api.NewHandler(cfg, st, nil, nil)
	r := httpserver.NewRouter(cfg, handler, pinger)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
