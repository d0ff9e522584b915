package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
	if store.Dialect() != SQLite {
		t.Errorf("Dialect() = %q, expected %q", store.Dialect(), SQLite)
	}
}

func TestDialectOf(t *testing.T) {
	tests := []struct {
		dsn      string
		expected Dialect
	}{
		{"~/.lode/lode.db", SQLite},
		{"/tmp/x.db", SQLite},
		{"postgres://u:p@localhost/lode?sslmode=disable", Postgres},
		{"postgresql://localhost/lode", Postgres},
	}
	for _, tc := range tests {
		if got := DialectOf(tc.dsn); got != tc.expected {
			t.Errorf("DialectOf(%q) = %q, expected %q", tc.dsn, got, tc.expected)
		}
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE b = ? AND c = ?"
	pg := &Store{dialect: Postgres}
	if got := pg.rebind(q); got != "SELECT a FROM t WHERE b = $1 AND c = $2" {
		t.Errorf("rebind() = %q", got)
	}
	lite := &Store{dialect: SQLite}
	if got := lite.rebind(q); got != q {
		t.Errorf("rebind() on sqlite = %q, expected unchanged", got)
	}
}

func TestScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, s := range []int{3, 7, 5} {
		id, err := store.SaveScore(ctx, "lode", "p", s)
		if err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
		if id != int64(i+1) {
			t.Errorf("SaveScore() id = %d, expected %d", id, i+1)
		}
	}
	if _, err := store.SaveScore(ctx, "lode_practice", "p", 40); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores(ctx, "lode", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 7 || scores[1].Score != 5 {
		t.Errorf("TopScores() = %+v, expected [7 5]", scores)
	}

	high, err := store.HighScore(ctx, "lode")
	if err != nil || high != 7 {
		t.Errorf("HighScore() = %d, %v, expected 7", high, err)
	}

	stats, err := store.Stats(ctx, "lode")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 7 || stats.AvgScore != 5 {
		t.Errorf("Stats() = %+v", stats)
	}

	if err := store.ClearScores(ctx, "lode"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if high, _ := store.HighScore(ctx, "lode"); high != 0 {
		t.Errorf("HighScore() after clear = %d, expected 0", high)
	}
	if high, _ := store.HighScore(ctx, "lode_practice"); high != 40 {
		t.Error("ClearScores should not touch other games")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.LoadProgress(ctx, "alice"); err != nil || ok {
		t.Fatalf("LoadProgress() on empty store = %v, %v", ok, err)
	}

	saved := Progress{Level: 4, Lives: 2, Statuses: []byte{1, 0, 1, 0, 0}}
	if err := store.SaveProgress(ctx, "alice", saved); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	saved.Level = 5
	if err := store.SaveProgress(ctx, "alice", saved); err != nil {
		t.Fatalf("SaveProgress() overwrite failed: %v", err)
	}

	got, ok, err := store.LoadProgress(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("LoadProgress() = %v, %v", ok, err)
	}
	if got.Level != 5 || got.Lives != 2 || got.Done() != 2 || len(got.Statuses) != 5 {
		t.Errorf("LoadProgress() = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}
}

func TestListAndClearProgress(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, player := range []string{"bob", "carol"} {
		if err := store.SaveProgress(ctx, player, Progress{Lives: 5}); err != nil {
			t.Fatal(err)
		}
	}
	all, err := store.ListProgress(ctx)
	if err != nil {
		t.Fatalf("ListProgress() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(ListProgress()) = %d, expected 2", len(all))
	}

	if err := store.ClearProgress(ctx, "bob"); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}
	if _, ok, _ := store.LoadProgress(ctx, "bob"); ok {
		t.Error("progress for bob should be gone")
	}
	if _, ok, _ := store.LoadProgress(ctx, "carol"); !ok {
		t.Error("progress for carol should remain")
	}
}
