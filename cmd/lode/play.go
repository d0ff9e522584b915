package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/games/lode"
	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/platform/tui"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

var (
	flagPractice bool
	flagFeedAddr string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in this terminal",
	Long: `Start a run of the given game mode (default: lode).

Your level, lives and solved levels are saved per player and restored on
the next run. The run's score is the number of levels completed.

Controls:
  Arrows/WASD  - Move and climb (the hero keeps going until stopped)
  .            - Stop
  Z / X        - Dig left / right
  Space        - Dig in the facing direction
  P            - Pause
  + / -        - Next / previous level
  ] / [        - Skip 10 levels forward / back
  I            - Jump to the next unsolved level
  K            - Give up this level (costs a life)
  R            - Start a new run
  ?            - Show all keys
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 9 lives
  normal - 5 lives
  hard   - 3 lives
  fixed  - lives as set in the config file

Examples:
  lode play
  lode play lode_practice
  lode play --practice --difficulty easy
  lode play --levels ./my-pack.yaml
  lode play --feed :8080 --log lode.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Practice mode: lives never decrease")
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve the spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := lode.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagPractice {
		gameID = lode.PracticeGameID
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'lode list' to see the modes", gameID)
	}

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

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	if flagFeedAddr != "" {
		hub, stop := startFeed(flagFeedAddr, logger)
		defer stop()
		if lg, ok := game.(*lode.Game); ok {
			lg.AddStatusListener(hub.Publish)
		}
	}

	return tui.Run(game, runtimeConfig(cfg))
}
