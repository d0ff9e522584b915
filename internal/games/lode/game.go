// Package lode runs a Lode Runner session: it owns the stage, counts lives,
// tracks which levels are done, loads levels in the background and turns
// platform input into stage commands.
package lode

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

// Pause messages.
const (
	MsgTryAgain        = "Try again..."
	MsgGameOver        = "Game Over"
	MsgCongratulations = "Congratulations !"
	MsgAllLevelsDone   = "All levels done!"
)

const (
	GameID         = "lode"
	PracticeGameID = "lode_practice"
)

// Options configures a session.
type Options struct {
	Pack     *levels.Pack // nil selects the built-in pack
	Config   config.LodeConfig
	Practice bool // lives never decrease

	// Player keys saved progress and scores. Stores are optional.
	Player   string
	Progress ProgressStore
	Scores   ScoreStore

	Logger *log.Logger
}

// Game is one player's session.
// Step and the command methods must be called from a single goroutine.
type Game struct {
	opts Options
	pack *levels.Pack
	cfg  config.LodeConfig
	log  *log.Logger

	runtime core.RuntimeConfig
	stage   *sim.Stage

	level    int // level on the stage; a pending load does not change it
	lives    int
	statuses []byte
	score    int
	paused   bool
	message  string

	loads      chan loadResult
	pending    sim.LoadTicket
	loading    bool
	cancelLoad context.CancelFunc
	loadErr    error
	resolved   bool // the current stage's end has been handled

	listeners []func(LevelStatus)
}

// New creates a session. Reset must be called before the first Step.
func New(opts Options) (*Game, error) {
	pack := opts.Pack
	if pack == nil {
		var err error
		if pack, err = levels.Classic(); err != nil {
			return nil, fmt.Errorf("lode: built-in levels: %w", err)
		}
	}
	if pack.Count() == 0 {
		return nil, fmt.Errorf("lode: level pack %q is empty", pack.Name())
	}
	cfg := opts.Config
	if cfg.Game.Lives == 0 && cfg.Game.TickMS == 0 {
		cfg = config.DefaultLodeConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		opts:  opts,
		pack:  pack,
		cfg:   cfg,
		log:   logger,
		loads: make(chan loadResult),
		stage: sim.NewStage(0),
	}, nil
}

// ID returns the registry identifier.
func (g *Game) ID() string {
	if g.opts.Practice {
		return PracticeGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.opts.Practice {
		return "Lode Runner (Practice)"
	}
	return "Lode Runner"
}

// Reset starts a run: fresh lives at level 0, or the player's saved
// progress when a store is configured.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.cancelLoad != nil {
		g.cancelLoad()
		g.cancelLoad = nil
	}
	g.runtime = runtime
	// a fresh stage restarts load tickets, so stale workers get their own channel
	g.loads = make(chan loadResult)
	g.stage = sim.NewStage(runtime.Seed)
	g.stage.SetListener(g.onStageEvent)

	g.level = 0
	g.lives = g.cfg.Game.Lives
	g.statuses = make([]byte, g.pack.Count())
	g.score = 0
	g.paused = false
	g.message = ""
	g.loading = false
	g.loadErr = nil
	g.resolved = false

	g.restoreProgress()
	g.log.Info("run started", "game", g.ID(), "pack", g.pack.Name(), "level", g.level, "lives", g.lives)
	g.startLoad(g.level)
}

// Step handles one frame of input and advances the stage by one tick
// unless the session is paused.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.pollLoad()
	g.handleInput(in)

	if !g.paused && g.stage.Loaded() && !g.loading && !g.resolved {
		g.stage.Tick()
		if g.stage.Over() {
			g.stageOver(g.stage.LevelCompleted())
		}
	}
	return core.StepResult{State: g.State()}
}

// State reports the score (levels completed this run) and pause state.
// A run never ends on its own: game over restarts it at level 0.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Paused: g.paused,
	}
}

// Close stops any pending load and stores the run.
func (g *Game) Close() error {
	if g.cancelLoad != nil {
		g.cancelLoad()
		g.cancelLoad = nil
	}
	g.loading = false
	g.saveProgress()
	g.recordScore()
	return nil
}

// Stage exposes the running stage for rendering and inspection.
func (g *Game) Stage() *sim.Stage { return g.stage }

// Level returns the level on the stage. Before the first load completes it
// is the level being loaded.
func (g *Game) Level() int { return g.level }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Message returns the pause message, if any.
func (g *Game) Message() string { return g.message }

// Pack returns the level pack in use.
func (g *Game) Pack() *levels.Pack { return g.pack }

func (g *Game) onStageEvent(ev sim.Event) {
	switch ev {
	case sim.EventChestTaken:
		g.pushStatus()
	case sim.EventExitEnabled:
		g.log.Debug("exit enabled", "level", g.level)
	}
}

// stageOver resolves the end of a level: the level status is recorded,
// lives are adjusted, the next stage is loaded and the session pauses with
// a message. The level number changes once the next stage is committed.
func (g *Game) stageOver(completed bool) {
	if !g.paused {
		if completed {
			g.statuses[g.level] = statusDone
		} else {
			g.statuses[g.level] = statusNotDone
		}
	}
	g.resolved = true

	next := g.level
	if completed {
		g.score++
		next = (g.level + 1) % g.pack.Count()
		g.message = MsgCongratulations
		if next%g.gameLevels() == 0 {
			g.message = ""
		}
	} else {
		if !g.opts.Practice {
			g.lives--
		}
		if g.lives < 0 {
			g.log.Info("game over", "player", g.opts.Player, "score", g.score)
			g.recordScore()
			g.lives = g.cfg.Game.Lives
			next = 0
			g.message = MsgGameOver
		} else {
			g.message = MsgTryAgain
		}
	}
	g.log.Info("stage over", "completed", completed, "level", g.level, "next", next, "lives", g.lives)

	g.paused = true
	g.startLoad(next)
	g.saveProgress()
	g.pushStatus()
}

// gameLevels is the size of one game block.
func (g *Game) gameLevels() int {
	n := g.pack.GameLevels()
	if c := g.cfg.Game.GameLevels; c > 0 && c < n {
		n = c
	}
	if n <= 0 {
		return 1
	}
	return n
}

var (
	configPath       string
	difficultyPreset string
	defaultOptions   Options
)

// SetConfigPath sets the config file used by registry-created sessions.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the preset of registry-created sessions.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetDefaults sets the pack, player, stores and logger of registry-created
// sessions. Practice sessions never use the progress store.
func SetDefaults(opts Options) {
	defaultOptions = opts
}

func newFromDefaults(practice bool) (registry.Game, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if difficultyPreset != "" {
		preset, err := config.ParsePreset(difficultyPreset)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	opts := defaultOptions
	opts.Config = cfg
	opts.Practice = practice
	if practice {
		// practice runs never overwrite the saved run
		opts.Progress = nil
	}
	if opts.Pack == nil && cfg.Levels.Path != "" {
		if opts.Pack, err = levels.Load(cfg.Levels.Path, cfg.Levels.MaxLevels); err != nil {
			return nil, err
		}
	}
	return New(opts)
}

func init() {
	registry.Register(GameID, "Lode Runner", func() (registry.Game, error) {
		return newFromDefaults(false)
	})
	registry.Register(PracticeGameID, "Lode Runner (Practice)", func() (registry.Game, error) {
		return newFromDefaults(true)
	})
}
