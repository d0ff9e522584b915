package lode

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-lode/internal/storage"
)

// ProgressStore persists a player's run between sessions.
type ProgressStore interface {
	LoadProgress(ctx context.Context, player string) (storage.Progress, bool, error)
	SaveProgress(ctx context.Context, player string, p storage.Progress) error
}

// ScoreStore records finished runs.
type ScoreStore interface {
	SaveScore(ctx context.Context, gameID, player string, score int) (int64, error)
}

const storeTimeout = 2 * time.Second

// restoreProgress reads the saved run. Missing or unreadable progress
// leaves the fresh run in place.
func (g *Game) restoreProgress() {
	if g.opts.Progress == nil || g.opts.Player == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	p, ok, err := g.opts.Progress.LoadProgress(ctx, g.opts.Player)
	if err != nil {
		g.log.Error("load progress failed", "player", g.opts.Player, "err", err)
		return
	}
	if !ok {
		return
	}
	count := g.pack.Count()
	if count > 0 {
		g.level = ((p.Level % count) + count) % count
	}
	if p.Lives >= 0 {
		g.lives = p.Lives
	}
	copy(g.statuses, p.Statuses)
	g.log.Info("progress restored", "player", g.opts.Player, "level", g.level, "lives", g.lives)
}

func (g *Game) saveProgress() {
	if g.opts.Progress == nil || g.opts.Player == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	statuses := make([]byte, len(g.statuses))
	copy(statuses, g.statuses)
	p := storage.Progress{Level: g.level, Lives: g.lives, Statuses: statuses}
	if err := g.opts.Progress.SaveProgress(ctx, g.opts.Player, p); err != nil {
		g.log.Error("save progress failed", "player", g.opts.Player, "err", err)
	}
}

// recordScore writes the run score once and starts counting from zero.
func (g *Game) recordScore() {
	score := g.score
	g.score = 0
	if score <= 0 || g.opts.Scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := g.opts.Scores.SaveScore(ctx, g.ID(), g.opts.Player, score); err != nil {
		g.log.Error("save score failed", "score", score, "err", err)
		return
	}
	g.log.Info("score saved", "player", g.opts.Player, "score", score)
}
