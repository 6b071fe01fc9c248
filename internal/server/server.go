package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"snow-tracker/internal/config"
	"snow-tracker/internal/logger"
)

// RouteRegistrar is implemented by every API handler.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// NewRouter builds the chi router with the shared middleware stack and mounts handlers.
func NewRouter(cfg *config.Config, log *logger.Logger, handlers ...RouteRegistrar) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(cfg.HTTP.CORSAllowedOrigins))
	r.Use(RateLimit(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})

	for _, h := range handlers {
		h.RegisterRoutes(r)
	}
	return r
}

// New wraps handler in an http.Server using the configured timeouts.
func New(addr string, handler http.Handler, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down within five seconds.
func Run(server *http.Server, name string, log *logger.Logger) {
	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 %s running on %s", name, server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", fmt.Sprintf("✅ %s shutdown complete", name))
	}
}
