package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ray/storefront-backend/internal/api"
	"github.com/ray/storefront-backend/internal/auth"
	"github.com/ray/storefront-backend/internal/config"
	"github.com/ray/storefront-backend/internal/store"
	"github.com/ray/storefront-backend/internal/store/memory"
	"github.com/ray/storefront-backend/internal/store/postgres"
	"github.com/ray/storefront-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		st = postgres.New(db)
	default:
		st = memory.New()
	}
	log.Printf("Using %s store backend", cfg.StoreBackend)

	uc := usecase.New(st)
	manager := auth.NewManager(uc.Users, auth.NewTokens(cfg))
	router := api.NewRouter(uc, manager, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
