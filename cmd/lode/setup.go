package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/games/lode"
	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/platform/feed"
	"github.com/vovakirdan/tui-lode/internal/storage"
)

// loadConfig reads the game config and applies the command line overrides.
func loadConfig() (config.LodeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagLevels != "" {
		cfg.Levels.Path = flagLevels
	}
	return cfg, nil
}

// loadPack opens the configured level pack.
func loadPack(cfg config.LodeConfig) (*levels.Pack, error) {
	return levels.Load(cfg.Levels.Path, cfg.Levels.MaxLevels)
}

// runtimeConfig sizes the game to this terminal.
func runtimeConfig(cfg config.LodeConfig) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	rate := flagFPS
	if rate <= 0 {
		rate = cfg.TickRate()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: rate,
		Seed:     flagSeed,
	}
}

// openStore opens the progress and score database. Games still run
// without one, so failures are only reported.
func openStore() *storage.Store {
	store, err := storage.Open(flagDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// configureGames points registry-created lode sessions at the shared
// config, pack, stores and logger.
func configureGames(pack *levels.Pack, store *storage.Store, player string, logger *log.Logger) {
	lode.SetConfigPath(flagConfig)
	lode.SetDifficultyPreset(flagDifficulty)
	opts := lode.Options{
		Pack:   pack,
		Player: player,
		Logger: logger,
	}
	if store != nil {
		opts.Progress = store
		opts.Scores = store
	}
	lode.SetDefaults(opts)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// newLogger logs to path, or nowhere when path is empty: the terminal
// belongs to the game while it runs.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "lode",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

// startFeed serves the spectator feed on addr until stop is called.
func startFeed(addr string, logger *log.Logger) (hub *feed.Hub, stop func()) {
	hub = feed.NewHub(logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("feed server error", "address", addr, "error", err)
		}
	}()
	logger.Info("spectator feed listening", "address", addr)

	return hub, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		//nolint:errcheck // Shutting down anyway
		srv.Shutdown(ctx)
	}
}
