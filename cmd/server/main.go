package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/lwandle/moneycircles/internal/auth"
	"github.com/lwandle/moneycircles/internal/chat"
	"github.com/lwandle/moneycircles/internal/circle"
	"github.com/lwandle/moneycircles/internal/config"
	"github.com/lwandle/moneycircles/internal/middleware"
	"github.com/lwandle/moneycircles/internal/savings"
	"github.com/lwandle/moneycircles/internal/service"
	"github.com/lwandle/moneycircles/internal/storage"
	"github.com/lwandle/moneycircles/internal/storage/memory"
	"github.com/lwandle/moneycircles/internal/storage/sqlite"
	"github.com/lwandle/moneycircles/internal/view"
	"github.com/lwandle/moneycircles/pkg/logging"
)

func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return sqlite.New(cfg.DBPath)
	default:
		store := memory.New()
		if cfg.Seed {
			if err := store.Seed(context.Background()); err != nil {
				return nil, fmt.Errorf("failed to seed store: %w", err)
			}
			slog.Info("Demo data seeded")
		}
		return store, nil
	}
}

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StoreBackend)

	engine := circle.New(store)
	views := view.New(store)
	savingsService := savings.New(store)
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	hub := chat.NewHub()

	// Authenticated API routes get their own mux so the auth middleware
	// wraps them all without touching login, metrics or the chat socket.
	api := http.NewServeMux()
	service.NewUserService(store, savingsService).Register(api)
	service.NewCircleService(engine, views).Register(api)

	mux := http.NewServeMux()
	service.NewAuthService(authenticator, jwtManager).Register(mux)
	mux.Handle("/api/", middleware.RequireAuth(jwtManager)(api))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /ws", chat.Handler(hub))

	handler := middleware.Logging(middleware.Metrics(mux)(mux))

	// h2c enables HTTP/2 without TLS for local and proxied deployments.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
