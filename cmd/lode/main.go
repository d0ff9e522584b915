// lode is a Lode Runner game for the terminal.
//
// Usage:
//
//	lode list                  - List game modes
//	lode play [game]           - Play in this terminal
//	lode menu                  - Pick a mode from a menu
//	lode serve                 - Start the SSH server
//	lode scores [game]         - Show high scores
//	lode levels list|show|export
//	lode progress show|clear
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: from config, 15)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <dsn>            - SQLite path or postgres:// DSN (default: ~/.lode/lode.db)
//	--config <path>       - Game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <path>       - Level pack (.yaml text pack or binary resource)
//	--player <name>       - Player name (default: $USER)
//	--log <file>          - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDB         string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagPlayer     string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lode",
	Short: "Lode Runner in your terminal",
	Long: `Lode Runner for the terminal: collect every chest, dodge the
pursuers, dig holes to trap them and climb out through the exit.

Available commands:
  list      - Show the game modes
  play      - Play a game directly
  menu      - Pick a mode from a menu
  serve     - Start an SSH server for remote play
  scores    - View high scores
  levels    - Inspect and export level packs
  progress  - Show or clear saved progress

Examples:
  lode play
  lode play --practice --difficulty easy
  lode levels show 3
  lode serve --addr :2222 --feed :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", storage.DefaultPath, "SQLite path or postgres:// DSN for progress and scores")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level pack: .yaml text pack or binary resource")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name for saved progress and scores")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write game logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
}
