package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/klondike-go/internal/adapters/clock"
	httpadapter "github.com/randomtoy/klondike-go/internal/adapters/http"
	"github.com/randomtoy/klondike-go/internal/adapters/prefs"
	"github.com/randomtoy/klondike-go/internal/adapters/webhook"
	"github.com/randomtoy/klondike-go/internal/app"
	"github.com/randomtoy/klondike-go/internal/config"
	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func newRNG(seed *uint64) domain.RNG {
	if seed == nil {
		return stdRNG{}
	}
	return domain.NewSeededRNG(*seed)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, closePrefs, err := prefs.Open(ctx, prefs.Options{
		Backend: cfg.PrefsBackend,
		Path:    cfg.PrefsPath,
		Redis: prefs.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		},
	})
	if err != nil {
		logger.Error("failed to open preferences", "backend", cfg.PrefsBackend, "error", err)
		os.Exit(1)
	}
	defer closePrefs()

	var notifier ports.WinNotifier
	if cfg.WebhookURL != "" {
		notifier = webhook.NewNotifier(&http.Client{Timeout: cfg.WebhookTimeout}, cfg.WebhookURL, logger)
	}

	games := app.NewRegistry(newRNG, store, nil, notifier, clock.NewTicker(), cfg.MaxGames, logger,
		app.WithIdleTTL(cfg.SessionTTL),
	)
	defer games.Close()

	if cfg.SessionTTL > 0 {
		sweeper := clock.Ticker{Interval: min(cfg.SessionTTL, time.Minute)}
		stopSweep := sweeper.Start(func() { games.Sweep(ctx) })
		defer stopSweep()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(games, store, logger)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "prefs_backend", cfg.PrefsBackend)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", "active_games", games.Len())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
