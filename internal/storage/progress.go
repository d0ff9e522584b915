package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Progress is a player's saved run.
type Progress struct {
	Player    string
	Level     int
	Lives     int
	Statuses  []byte // one byte per level, 1 when done
	UpdatedAt time.Time
}

// LoadProgress returns the saved run of a player. The bool is false when
// nothing is saved.
func (s *Store) LoadProgress(ctx context.Context, player string) (Progress, bool, error) {
	p := Progress{Player: player}
	var updated int64
	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT level, lives, statuses, updated_at FROM progress WHERE player = ?"),
		player,
	).Scan(&p.Level, &p.Lives, &p.Statuses, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Progress{}, false, nil
	}
	if err != nil {
		return Progress{}, false, fmt.Errorf("storage: cannot load progress for %q: %w", player, err)
	}
	p.UpdatedAt = time.Unix(updated, 0)
	return p, true, nil
}

// SaveProgress stores the run of a player, replacing any earlier one.
func (s *Store) SaveProgress(ctx context.Context, player string, p Progress) error {
	statuses := p.Statuses
	if statuses == nil {
		statuses = []byte{}
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO progress (player, level, lives, statuses, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (player) DO UPDATE SET
		   level = excluded.level,
		   lives = excluded.lives,
		   statuses = excluded.statuses,
		   updated_at = excluded.updated_at`),
		player, p.Level, p.Lives, statuses, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress for %q: %w", player, err)
	}
	return nil
}

// ListProgress returns every saved run, most recent first.
func (s *Store) ListProgress(ctx context.Context) ([]Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player, level, lives, statuses, updated_at FROM progress ORDER BY updated_at DESC, player ASC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		var updated int64
		if err := rows.Scan(&p.Player, &p.Level, &p.Lives, &p.Statuses, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = time.Unix(updated, 0)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearProgress deletes the saved run of a player.
func (s *Store) ClearProgress(ctx context.Context, player string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM progress WHERE player = ?"), player); err != nil {
		return fmt.Errorf("storage: cannot clear progress for %q: %w", player, err)
	}
	return nil
}

// Done counts the levels marked done.
func (p Progress) Done() int {
	n := 0
	for _, b := range p.Statuses {
		if b != 0 {
			n++
		}
	}
	return n
}
