package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/games/lode"
	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/platform/feed"
	"github.com/vovakirdan/tui-lode/internal/platform/tui"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

var flagMenuFeed string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game mode from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for high scores.
Esc during a game saves your progress and returns to the menu.

Examples:
  lode menu
  lode menu --player ada
  lode menu --db postgres://lode@localhost/lode?sslmode=disable`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuFeed, "feed", "", "Serve the spectator feed on this address (e.g. :8080)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var pack *levels.Pack
	if flagLevels != "" {
		if pack, err = loadPack(cfg); err != nil {
			return err
		}
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	configureGames(pack, store, flagPlayer, logger)

	var hub *feed.Hub
	if flagMenuFeed != "" {
		var stop func()
		hub, stop = startFeed(flagMenuFeed, logger)
		defer stop()
	}

	opts := tui.SessionOptions{
		NewGame: func(id string) (registry.Game, error) {
			game, err := registry.Create(id)
			if err != nil {
				return nil, err
			}
			if lg, ok := game.(*lode.Game); ok && hub != nil {
				lg.AddStatusListener(hub.Publish)
			}
			return game, nil
		},
		Greeting: func() string { return tui.GreetPlayer(nil, flagPlayer) },
	}
	if store != nil {
		opts.Scores = store
		opts.Greeting = func() string { return tui.GreetPlayer(store, flagPlayer) }
	}
	return tui.RunSession(runtimeConfig(cfg), opts)
}
