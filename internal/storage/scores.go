package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one recorded run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates the scores of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// SaveScore records a score and returns the new row id.
func (s *Store) SaveScore(ctx context.Context, gameID, player string, score int) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		s.rebind("INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?) RETURNING id"),
		gameID, player, score,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores returns the best scores of a game, highest first.
func (s *Store) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, game_id, player, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`),
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score of a game, 0 if none.
func (s *Store) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT MAX(score) FROM scores WHERE game_id = ?"),
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores of a game.
func (s *Store) ClearScores(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM scores WHERE game_id = ?"), gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats aggregates the scores of a game.
func (s *Store) Stats(ctx context.Context, gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`),
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return GameStats{}, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
