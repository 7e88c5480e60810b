package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/hearthapp/hearth/internal/auth"
	"github.com/hearthapp/hearth/internal/cache"
	"github.com/hearthapp/hearth/internal/config"
	"github.com/hearthapp/hearth/internal/metrics"
	"github.com/hearthapp/hearth/internal/server"
	"github.com/hearthapp/hearth/internal/storage/cached"
	"github.com/hearthapp/hearth/internal/storage/sqlite"
	"github.com/hearthapp/hearth/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogFile); err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Wrap the store with the TTL read cache; any write clears it.
	readCache := cache.New(cfg.CacheSize, cfg.CacheTTL, cache.WithCounters(
		metrics.CacheHits.Inc,
		metrics.CacheMisses.Inc,
		metrics.CacheEvictions.Inc,
	))
	cachedStore := cached.New(store, readCache)
	slog.Info("Read cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)

	authn := auth.NewPasswordAuthenticator(cachedStore)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	opts := []server.Option{server.WithCacheStats(cachedStore)}
	if cfg.StaticDir != "" {
		opts = append(opts, server.WithStaticDir(cfg.StaticDir))
		slog.Info("Serving static files", "path", cfg.StaticDir)
	}
	srv := server.New(cachedStore, authn, jwtManager, opts...)

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(srv.Handler(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
