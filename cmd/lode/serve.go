package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeFeed   string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lode Runner SSH server",
	Long: `Start an SSH server so players can connect and play.

Each SSH user is a player: progress is saved under the SSH user name and
restored on the next connection. Scores are shared by everyone on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lode/host_key

Examples:
  lode serve                                # Listen on :23234
  lode serve --addr :2222                   # Listen on port 2222
  lode serve --feed :8080                   # Also stream live status over WebSocket
  lode serve --db postgres://lode@db/lode   # Share progress through PostgreSQL

Players connect with:
  ssh -p 23234 ada@localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "addr", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeFeed, "feed", "", "Serve the spectator feed on this address (e.g. :8080)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 1, "Concurrent sessions allowed per player")
}

func runServe(_ *cobra.Command, _ []string) error {
	lodeCfg, err := loadConfig()
	if err != nil {
		return err
	}
	pack, err := loadPack(lodeCfg)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DSN = flagDB
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.MaxSessionsPerPlayer = flagMaxSessions
	cfg.Lode = lodeCfg
	cfg.Pack = pack
	cfg.Seed = flagSeed
	if flagFPS > 0 {
		cfg.Lode.Game.TickMS = max(1000/flagFPS, 1)
	}

	if flagServeFeed != "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lode-feed",
		})
		hub, stop := startFeed(flagServeFeed, logger)
		defer stop()
		cfg.Feed = hub
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting Lode Runner SSH server on %s (%d levels from %s)\n", cfg.Address, pack.Count(), pack.Name())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
