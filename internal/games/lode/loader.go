package lode

import (
	"context"

	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

type loadResult struct {
	ticket sim.LoadTicket
	level  int
	layout *sim.Layout
	err    error
}

// startLoad decodes a level on a worker goroutine. A newer call supersedes
// it: the older worker is cancelled and its ticket can no longer commit.
func (g *Game) startLoad(level int) {
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancelLoad = cancel
	g.pending = g.stage.BeginLoad()
	g.loading = true

	ticket, src, out := g.pending, g.pack, g.loads
	go func() {
		layout, err := sim.LoadLayout(src, level)
		select {
		case out <- loadResult{ticket: ticket, level: level, layout: layout, err: err}:
		case <-ctx.Done():
		}
	}()
}

// pollLoad commits a finished load without blocking.
func (g *Game) pollLoad() {
	for g.loading {
		select {
		case r := <-g.loads:
			g.finishLoad(r)
		default:
			return
		}
	}
}

// AwaitLoad blocks until the pending level load has been committed or has
// failed. It returns the load error, or ctx.Err() on cancellation.
func (g *Game) AwaitLoad(ctx context.Context) error {
	for g.loading {
		select {
		case r := <-g.loads:
			g.finishLoad(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return g.loadErr
}

func (g *Game) finishLoad(r loadResult) {
	if r.ticket != g.pending {
		return
	}
	g.loading = false
	g.cancelLoad()
	g.cancelLoad = nil

	if r.err != nil {
		// the previous stage stays; its end, if any, is not resolved again
		g.loadErr = r.err
		g.log.Error("level load failed", "level", r.level, "err", r.err)
		g.pushStatus()
		return
	}
	if !g.stage.Commit(r.ticket, r.layout) {
		return
	}
	g.level = r.level
	g.resolved = false
	g.loadErr = nil
	g.log.Debug("level loaded", "level", r.level, "chests", r.layout.Chests, "pursuers", len(r.layout.Pursuers))
	g.saveProgress()
	g.pushStatus()
}

// Loading reports whether a level load is in flight.
func (g *Game) Loading() bool {
	return g.loading
}

// LoadErr returns the error of the last failed load, nil after a success.
func (g *Game) LoadErr() error {
	return g.loadErr
}
