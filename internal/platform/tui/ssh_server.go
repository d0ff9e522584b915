package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/games/lode"
	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/platform/feed"
	"github.com/vovakirdan/tui-lode/internal/registry"
	"github.com/vovakirdan/tui-lode/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.lode/host_key.
	HostKeyPath string

	// DSN selects the progress and score database, see storage.Open.
	DSN string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessionsPerPlayer limits concurrent sessions of one SSH user,
	// since they share saved progress. Zero means one.
	MaxSessionsPerPlayer int

	Lode config.LodeConfig
	Pack *levels.Pack // nil selects the built-in pack
	Seed int64        // 0 seeds every game from the clock

	// Feed, when set, receives the status of every running game.
	Feed *feed.Hub
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:              ":23234",
		DSN:                  storage.DefaultPath,
		IdleTimeout:          30 * time.Minute,
		MaxSessionsPerPlayer: 1,
		Lode:                 config.DefaultLodeConfig(),
	}
}

// SSHServer serves lode sessions over SSH with Wish.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu       sync.Mutex
	sessions map[ssh.Session]*sessionGames
	players  map[string]int
}

// sessionGames tracks the games one SSH session created.
type sessionGames struct {
	mu    sync.Mutex
	games []*lode.Game
}

func (t *sessionGames) add(g *lode.Game) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.games = append(t.games, g)
}

func (t *sessionGames) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, g := range t.games {
		//nolint:errcheck // Close only logs store failures
		g.Close()
	}
	t.games = nil
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lode-ssh",
	})
	if cfg.MaxSessionsPerPlayer <= 0 {
		cfg.MaxSessionsPerPlayer = 1
	}
	if cfg.Lode.Game.TickMS <= 0 {
		cfg.Lode = config.DefaultLodeConfig()
	}

	store, err := storage.Open(cfg.DSN)
	if err != nil {
		logger.Warn("could not open progress database, playing without saves", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		logger:   logger,
		sessions: make(map[ssh.Session]*sessionGames),
		players:  make(map[string]int),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".lode", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Wish runs middleware last to first: logging wraps everything.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionMiddleware enforces the per-player session limit and flushes the
// session's games once the program has exited.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		player := sess.User()

		s.mu.Lock()
		if s.players[player] >= s.config.MaxSessionsPerPlayer {
			s.mu.Unlock()
			s.logger.Warn("session refused", "player", player, "limit", s.config.MaxSessionsPerPlayer)
			//nolint:errcheck // Client may already be gone
			fmt.Fprintf(sess, "%s already has %d session(s) running.\r\n", player, s.config.MaxSessionsPerPlayer)
			sess.Exit(1)
			return
		}
		tracker := &sessionGames{}
		s.players[player]++
		s.sessions[sess] = tracker
		s.mu.Unlock()

		next(sess)

		tracker.closeAll()
		if s.config.Feed != nil {
			s.config.Feed.Forget(player)
		}

		s.mu.Lock()
		delete(s.sessions, sess)
		if s.players[player]--; s.players[player] <= 0 {
			delete(s.players, player)
		}
		s.mu.Unlock()
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	s.mu.Lock()
	tracker := s.sessions[sess]
	s.mu.Unlock()
	if tracker == nil {
		tracker = &sessionGames{}
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.Lode.TickRate(),
		Seed:     s.config.Seed,
	}

	player := sess.User()
	opts := SessionOptions{
		NewGame:  s.gameFactory(player, tracker),
		Greeting: func() string { return GreetPlayer(s.progress(), player) },
		Renderer: bubbletea.MakeRenderer(sess),
	}
	if s.store != nil {
		opts.Scores = s.store
	}

	return NewSessionModel(cfg, opts), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// gameFactory builds lode sessions for player. Only the main game keeps
// saved progress; practice runs always start from level 0.
func (s *SSHServer) gameFactory(player string, tracker *sessionGames) GameFactory {
	return func(gameID string) (registry.Game, error) {
		if gameID != lode.GameID && gameID != lode.PracticeGameID {
			return nil, fmt.Errorf("unknown game %q", gameID)
		}
		opts := lode.Options{
			Pack:     s.config.Pack,
			Config:   s.config.Lode,
			Practice: gameID == lode.PracticeGameID,
			Player:   player,
			Logger:   s.logger.With("player", player, "game", gameID),
		}
		if s.store != nil {
			opts.Scores = s.store
			if !opts.Practice {
				opts.Progress = s.store
			}
		}

		g, err := lode.New(opts)
		if err != nil {
			return nil, err
		}
		if s.config.Feed != nil {
			g.AddStatusListener(s.config.Feed.Publish)
		}
		tracker.add(g)
		return g, nil
	}
}

// progress returns the store as a ProgressSource, or nil without a store.
func (s *SSHServer) progress() ProgressSource {
	if s.store == nil {
		return nil
	}
	return s.store
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			done <- nil
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
