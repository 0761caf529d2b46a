package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/randomtoy/klondike-go/internal/adapters/cli"
	"github.com/randomtoy/klondike-go/internal/adapters/clock"
	"github.com/randomtoy/klondike-go/internal/adapters/prefs"
	"github.com/randomtoy/klondike-go/internal/adapters/text"
	"github.com/randomtoy/klondike-go/internal/app"
	"github.com/randomtoy/klondike-go/internal/config"
	"github.com/randomtoy/klondike-go/internal/domain"
)

// parseSeed reads --seed. Without the flag the deal seed comes from random;
// any explicit value, 0 included, replays that deal.
func parseSeed(args []string, random func() uint64) (uint64, error) {
	fs := pflag.NewFlagSet("klondike", pflag.ContinueOnError)
	seed := fs.Uint64("seed", 0, "deal seed (random when unset)")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if fs.Changed("seed") {
		return *seed, nil
	}
	return random(), nil
}

func main() {
	seed, err := parseSeed(os.Args[1:], rand.Uint64)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if os.Getenv("KLONDIKE_LOG_LEVEL") != "" {
		level = cfg.LogLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
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

	logger.Debug("dealing", "seed", seed)

	ctl := app.NewController(domain.NewSeededRNG(seed), store, text.NewRenderer(os.Stdout), nil, logger)
	session := cli.NewSession(ctl, os.Stdout)

	// The clock goroutine only signals; every controller call happens here.
	ticks := make(chan struct{}, 1)
	stopClock := clock.NewTicker().Start(func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	defer stopClock()

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	ctl.NewGame(ctx)
	fmt.Fprint(os.Stdout, "h for help\n> ")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			ctl.Tick()
		case line, ok := <-lines:
			if !ok {
				return
			}
			err := session.Handle(ctx, line)
			switch {
			case errors.Is(err, cli.ErrQuit):
				return
			case err != nil:
				fmt.Fprintln(os.Stdout, err)
			}
			fmt.Fprint(os.Stdout, "> ")
		}
	}
}
