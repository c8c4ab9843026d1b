package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"integrityindex/internal/platform/config"
	"integrityindex/internal/platform/httpserver"
	"integrityindex/internal/platform/logger"
	"integrityindex/internal/platform/middleware"
	politicianhandler "integrityindex/internal/politician/handler"
	politicianmetrics "integrityindex/internal/politician/metrics"
	"integrityindex/internal/politician/service"
	"integrityindex/internal/politician/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	if err := store.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Error("ensure schema", "error", err)
		os.Exit(1)
	}
	cancel()

	svc := service.New(store.NewPostgres(db), politicianmetrics.New())
	h := politicianhandler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	h.Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting catalog api", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
