package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/motorline/sales-system/sales-service/config"
	"github.com/motorline/sales-system/sales-service/handlers"
	"github.com/motorline/sales-system/shared/events"
	"github.com/motorline/sales-system/shared/telemetry"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	deps, err := config.BuildDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Logger.Error().Err(err).Msg("error closing dependencies")
		}
	}()

	deps.Logger.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting sales service")

	// Re-drive sagas a previous process left suspended
	if resumed, err := deps.FulfillOrder.ResumeSuspended(context.Background()); err != nil {
		deps.Logger.Error().Err(err).Msg("failed to resume suspended sagas")
	} else if resumed > 0 {
		deps.Logger.Info().Int("count", resumed).Msg("resuming suspended sagas")
	}

	// Consume manufacturer stock events
	go func() {
		if err := deps.EventSubscriber.Subscribe(context.Background(), events.StockReplenishedEvent, deps.OrderEventHandlers); err != nil {
			deps.Logger.Error().Err(err).Msg("event subscriber failed")
		}
	}()

	router := setupRouter(deps)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	deps.Logger.Info().Msg("shutting down sales service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	deps.Logger.Info().Msg("sales service stopped")
}

func setupRouter(deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	if deps.Telemetry != nil {
		r.Use(telemetry.Middleware(deps.Telemetry))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", handlers.NewMetricsHandler())

	deps.OrderHandlers.RegisterRoutes(r)

	return r
}
