package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/revoltmotors/leadclean/internal/blocklist"
	"github.com/revoltmotors/leadclean/internal/config"
	"github.com/revoltmotors/leadclean/internal/core"
	"github.com/revoltmotors/leadclean/internal/logging"
	"github.com/revoltmotors/leadclean/internal/schema"
	"github.com/revoltmotors/leadclean/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"blocklist_path", cfg.Clean.BlocklistPath,
		"calls_passive", cfg.Clean.CallsPassive,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	cutoff := core.CutoffFromString(cfg.Clean.CutoffDate)

	store := blocklist.NewStore(cfg.Clean.BlocklistPath)

	rules := core.NewNameRules(
		append(append([]string{}, schema.DefaultModelTokens...), cfg.Clean.ExtraModelTokens...),
		append(append([]string{}, schema.DefaultJunkNames...), cfg.Clean.ExtraJunkNames...),
	)

	cleaner := core.NewCleaner(store,
		core.WithNameRules(rules),
		core.WithCutoff(cutoff),
		core.WithCallsPassive(cfg.Clean.CallsPassive),
	)

	server := web.NewServer(cleaner, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
