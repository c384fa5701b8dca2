package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/kovacsmate/leaguepulse/internal/app"
	"github.com/kovacsmate/leaguepulse/internal/broadcast"
	"github.com/kovacsmate/leaguepulse/internal/config"
	"github.com/kovacsmate/leaguepulse/internal/database"
	"github.com/kovacsmate/leaguepulse/internal/domain"
	"github.com/kovacsmate/leaguepulse/internal/logging"
	"github.com/kovacsmate/leaguepulse/internal/notify"
	"github.com/kovacsmate/leaguepulse/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupNotifier(cfg *config.Config) (domain.NotificationSender, func()) {
	if cfg.FCMServerKey == "" {
		slog.Warn("FCM_SERVER_KEY not set, push notifications disabled")
		return notify.NoopSender{}, func() {}
	}

	relay := notify.NewRelay(notify.NewClient(cfg.FCMServerKey, cfg.FCMEndpoint))
	return relay, relay.Stop
}

func runGracefulShutdown(srv *server.Server, broadcaster *broadcast.Broadcaster, stopNotifier func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		broadcaster.Stop()
		stopNotifier()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	// Seed in the background so the server binds its port immediately.
	if cfg.SeedOnStartup {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := database.SeedIfEmpty(ctx, pool); err != nil {
				slog.Error("Failed to seed database", "error", err)
			}
		}()
	}

	playerRepo := database.NewPlayerRepo(pool)
	teamRepo := database.NewTeamRepo(pool)
	matchRepo := database.NewMatchRepo(pool)
	tokenRepo := database.NewDeviceTokenRepo(pool)

	broadcaster := broadcast.NewBroadcaster(clock)

	notifier, stopNotifier := setupNotifier(cfg)

	appSvc := app.NewService(playerRepo, teamRepo, matchRepo, tokenRepo, broadcaster, notifier)

	srv := server.NewServer(cfg, appSvc, broadcaster, pool)

	done := runGracefulShutdown(srv, broadcaster, stopNotifier)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
