package lode

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/games/lode/levels"
	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
	"github.com/vovakirdan/tui-lode/internal/storage"
)

// board returns an empty level with a concrete floor and the given glyphs placed.
func board(t *testing.T, marks map[[2]int]rune) []byte {
	t.Helper()
	rows := make([][]rune, sim.Height)
	for y := range rows {
		fill := ' '
		if y == sim.Height-1 {
			fill = '@'
		}
		rows[y] = []rune(strings.Repeat(string(fill), sim.Width))
	}
	for pos, r := range marks {
		rows[pos[1]][pos[0]] = r
	}
	tl := levels.TextLevel{Name: "test"}
	for _, r := range rows {
		tl.Rows = append(tl.Rows, string(r))
	}
	codes, err := tl.Codes()
	if err != nil {
		t.Fatalf("Codes() error: %v", err)
	}
	return codes
}

// chestLevel has the hero on the floor with a chest two tiles to its left.
func chestLevel(t *testing.T) []byte {
	return board(t, map[[2]int]rune{{3, 14}: '&', {1, 14}: '$'})
}

// winLevel has no chests and the hero on the top row, so it completes on the first tick.
func winLevel(t *testing.T) []byte {
	return board(t, map[[2]int]rune{{5, 0}: '&', {5, 1}: '@'})
}

func testPack(t *testing.T, lv ...[]byte) *levels.Pack {
	t.Helper()
	var blob []byte
	for _, codes := range lv {
		blob = append(blob, levels.Encode(codes)...)
	}
	return levels.NewPack("test", blob, len(lv))
}

type memStore struct {
	progress map[string]storage.Progress
	saves    int
	scores   []int
}

func newMemStore() *memStore {
	return &memStore{progress: make(map[string]storage.Progress)}
}

func (m *memStore) LoadProgress(_ context.Context, player string) (storage.Progress, bool, error) {
	p, ok := m.progress[player]
	return p, ok, nil
}

func (m *memStore) SaveProgress(_ context.Context, player string, p storage.Progress) error {
	m.saves++
	m.progress[player] = p
	return nil
}

func (m *memStore) SaveScore(_ context.Context, _, _ string, score int) (int64, error) {
	m.scores = append(m.scores, score)
	return int64(len(m.scores)), nil
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 15, Seed: 1})
	await(t, g)
	return g
}

func await(t *testing.T, g *Game) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := g.AwaitLoad(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("AwaitLoad() timed out")
	}
	return err
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestResetLoadsFirstLevel(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), winLevel(t))})

	if !g.Stage().Loaded() {
		t.Fatal("stage should be loaded after AwaitLoad")
	}
	st := g.Status()
	if st.LevelNumber != 0 || st.LivesLeft != config.DefaultLives || st.ChestsTotal != 1 || st.PursuerCount != 0 {
		t.Errorf("Status() = %+v", st)
	}
	if g.ID() != GameID || g.Paused() {
		t.Errorf("ID() = %q, Paused() = %v", g.ID(), g.Paused())
	}
}

func TestCompletingLevelAdvances(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), winLevel(t), chestLevel(t))})

	var got []LevelStatus
	g.AddStatusListener(func(st LevelStatus) { got = append(got, st) })

	g.LoadLevel(1)
	await(t, g)
	g.Step(core.NewInputFrame())
	if g.Level() != 1 {
		t.Errorf("Level() = %d before the next stage commits, expected 1", g.Level())
	}
	await(t, g)

	if g.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", g.Level())
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected 1", g.State().Score)
	}
	if !g.Paused() || g.Message() != MsgCongratulations {
		t.Errorf("Paused() = %v, Message() = %q", g.Paused(), g.Message())
	}
	if !g.levelDone(1) || g.DoneLevels() != 1 {
		t.Error("level 1 should be marked done")
	}
	if len(got) < 2 {
		t.Fatalf("listener got %d snapshots, expected at least 2", len(got))
	}
	last := got[len(got)-1]
	if last.LevelNumber != 2 || !last.Paused || last.LevelDone {
		t.Errorf("last status = %+v", last)
	}
}

func TestFinishingGameBlockHasNoMessage(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), winLevel(t))})

	g.LoadLevel(1)
	await(t, g)
	g.Step(core.NewInputFrame())
	await(t, g)

	if g.Level() != 0 {
		t.Errorf("Level() = %d, expected wrap to 0", g.Level())
	}
	if g.Message() != "" || !g.Paused() {
		t.Errorf("Message() = %q, Paused() = %v, expected empty and paused", g.Message(), g.Paused())
	}
}

func TestDeathCostsLife(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), winLevel(t))})

	g.RestartCurrentAsDeath()
	if g.Lives() != config.DefaultLives-1 {
		t.Errorf("Lives() = %d, expected %d", g.Lives(), config.DefaultLives-1)
	}
	if g.Message() != MsgTryAgain || g.Level() != 0 || !g.Paused() {
		t.Errorf("Message() = %q, Level() = %d, Paused() = %v", g.Message(), g.Level(), g.Paused())
	}
	if g.levelDone(0) {
		t.Error("death should leave the level not done")
	}
}

func TestGameOverRestartsRun(t *testing.T) {
	store := newMemStore()
	cfg := config.DefaultLodeConfig()
	cfg.Game.Lives = 0
	g := newTestGame(t, Options{
		Pack:   testPack(t, chestLevel(t), winLevel(t), chestLevel(t)),
		Config: cfg,
		Scores: store,
	})

	g.LoadLevel(1)
	await(t, g)
	g.Step(core.NewInputFrame())
	await(t, g)
	if g.Level() != 2 || g.State().Score != 1 {
		t.Fatalf("after win Level() = %d, Score = %d", g.Level(), g.State().Score)
	}

	g.RestartCurrentAsDeath()
	await(t, g)
	if g.Message() != MsgGameOver {
		t.Errorf("Message() = %q, expected %q", g.Message(), MsgGameOver)
	}
	if g.Level() != 0 || g.Lives() != 0 || g.State().Score != 0 {
		t.Errorf("Level() = %d, Lives() = %d, Score = %d", g.Level(), g.Lives(), g.State().Score)
	}
	if len(store.scores) != 1 || store.scores[0] != 1 {
		t.Errorf("recorded scores = %v, expected [1]", store.scores)
	}
}

func TestPracticeKeepsLives(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t)), Practice: true})

	for i := 0; i < 10; i++ {
		g.RestartCurrentAsDeath()
	}
	if g.Lives() != config.DefaultLives {
		t.Errorf("Lives() = %d, expected %d", g.Lives(), config.DefaultLives)
	}
	if g.ID() != PracticeGameID {
		t.Errorf("ID() = %q, expected %q", g.ID(), PracticeGameID)
	}
}

func TestPausedStageDoesNotTick(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t))})

	g.Step(frame(core.ActionPause))
	if !g.Paused() {
		t.Fatal("ActionPause should pause")
	}
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Stage().Ticks() != 0 {
		t.Errorf("Ticks() = %d while paused, expected 0", g.Stage().Ticks())
	}

	g.Step(frame(core.ActionLeft))
	if g.Paused() {
		t.Error("a move should resume the session")
	}
	if g.Stage().Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", g.Stage().Ticks())
	}
	if g.Stage().Hero().CurrentMove != sim.MoveLeft {
		t.Errorf("CurrentMove = %v, expected Left", g.Stage().Hero().CurrentMove)
	}
}

func TestChestPickupPushesStatus(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t))})

	var picked int
	g.AddStatusListener(func(st LevelStatus) { picked = st.ChestsPicked })

	g.Step(frame(core.ActionLeft))
	for i := 0; i < 30 && picked == 0; i++ {
		g.Step(core.NewInputFrame())
	}
	if picked != 1 {
		t.Errorf("ChestsPicked = %d, expected 1", picked)
	}
	if !g.Stage().ExitEnabled() {
		t.Error("taking the only chest should enable the exit")
	}
}

func TestAdvanceLevelClamps(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), chestLevel(t), chestLevel(t))})

	g.AdvanceLevel(10)
	await(t, g)
	if g.Level() != 2 {
		t.Errorf("AdvanceLevel(10) level = %d, expected 2", g.Level())
	}
	g.AdvanceLevel(-10)
	await(t, g)
	if g.Level() != 0 {
		t.Errorf("AdvanceLevel(-10) level = %d, expected 0", g.Level())
	}
	g.LoadLevel(-1)
	await(t, g)
	if g.Level() != 2 {
		t.Errorf("LoadLevel(-1) level = %d, expected 2", g.Level())
	}
	if g.Stage().Level() != 2 {
		t.Errorf("stage level = %d, expected 2", g.Stage().Level())
	}
}

func TestJumpToNextIncompleteLevel(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), chestLevel(t), chestLevel(t))})

	g.LoadLevel(1)
	await(t, g)
	g.statuses = []byte{0, 1, 1}
	ok := g.JumpToNextIncompleteLevel()
	await(t, g)
	if !ok || g.Level() != 0 {
		t.Errorf("JumpToNextIncompleteLevel() level = %d, expected wrap to 0", g.Level())
	}

	g.statuses = []byte{1, 0, 1}
	ok = g.JumpToNextIncompleteLevel()
	await(t, g)
	if !ok || g.Level() != 1 {
		t.Errorf("JumpToNextIncompleteLevel() level = %d, expected 1", g.Level())
	}

	g.statuses = []byte{1, 1, 1}
	if g.JumpToNextIncompleteLevel() {
		t.Error("JumpToNextIncompleteLevel() should fail when all levels are done")
	}
	if g.Message() != MsgAllLevelsDone || g.Level() != 1 {
		t.Errorf("Message() = %q, Level() = %d", g.Message(), g.Level())
	}

	g.ClearDoneLevels()
	if g.DoneLevels() != 0 {
		t.Errorf("DoneLevels() = %d after clear, expected 0", g.DoneLevels())
	}
}

func TestSupersededLoadNeverCommits(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), winLevel(t), chestLevel(t))})

	g.LoadLevel(1)
	g.LoadLevel(2)
	if err := await(t, g); err != nil {
		t.Fatalf("AwaitLoad() error: %v", err)
	}
	if g.Stage().Level() != 2 {
		t.Errorf("stage level = %d, expected 2", g.Stage().Level())
	}
	for i := 0; i < 3; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Stage().Level() != 2 || g.Stage().LevelCompleted() {
		t.Error("superseded level 1 must never become visible")
	}
}

func TestFailedLoadKeepsStage(t *testing.T) {
	blob := levels.Encode(chestLevel(t))
	pack := levels.NewPack("short", blob, 3)
	g := newTestGame(t, Options{Pack: pack})

	g.LoadLevel(2)
	err := await(t, g)
	if !errors.Is(err, levels.ErrResourceTruncated) {
		t.Fatalf("AwaitLoad() error = %v, expected ErrResourceTruncated", err)
	}
	if !g.Stage().Loaded() || g.Stage().Level() != 0 {
		t.Errorf("stage should keep level 0, got loaded=%v level=%d", g.Stage().Loaded(), g.Stage().Level())
	}
	if g.LoadErr() == nil {
		t.Error("LoadErr() should report the failure")
	}
	if g.Level() != 0 || g.Status().LevelNumber != 0 {
		t.Errorf("Level() = %d, Status().LevelNumber = %d, expected the stage's level 0", g.Level(), g.Status().LevelNumber)
	}

	g.LoadLevel(0)
	if err := await(t, g); err != nil {
		t.Fatalf("AwaitLoad() error: %v", err)
	}
	if g.LoadErr() != nil || g.Level() != 0 {
		t.Errorf("after a good load LoadErr() = %v, Level() = %d", g.LoadErr(), g.Level())
	}
}

func TestFailedLoadAfterWinIsNotReplayed(t *testing.T) {
	var blob []byte
	blob = append(blob, levels.Encode(chestLevel(t))...)
	blob = append(blob, levels.Encode(winLevel(t))...)
	pack := levels.NewPack("short", blob, 5)
	g := newTestGame(t, Options{Pack: pack})

	g.LoadLevel(1)
	await(t, g)
	g.Step(core.NewInputFrame())
	if err := await(t, g); !errors.Is(err, levels.ErrResourceTruncated) {
		t.Fatalf("AwaitLoad() error = %v, expected ErrResourceTruncated", err)
	}

	g.Resume()
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Level() != 1 || g.Stage().Level() != 1 {
		t.Errorf("Level() = %d, stage level = %d, expected 1", g.Level(), g.Stage().Level())
	}
	if g.State().Score != 1 || g.DoneLevels() != 1 {
		t.Errorf("Score = %d, DoneLevels() = %d, expected 1 and 1", g.State().Score, g.DoneLevels())
	}
	if g.Lives() != config.DefaultLives {
		t.Errorf("Lives() = %d, expected %d", g.Lives(), config.DefaultLives)
	}

	g.RestartCurrentAsDeath()
	if g.Lives() != config.DefaultLives {
		t.Errorf("suicide on a resolved stage cost a life, Lives() = %d", g.Lives())
	}

	g.LoadLevel(0)
	if err := await(t, g); err != nil {
		t.Fatalf("AwaitLoad() error: %v", err)
	}
	g.Step(core.NewInputFrame())
	if g.Stage().Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected the new stage to run", g.Stage().Ticks())
	}
}

func TestProgressRestoredAndSaved(t *testing.T) {
	store := newMemStore()
	store.progress["ann"] = storage.Progress{Level: 1, Lives: 2, Statuses: []byte{1, 0}}

	g := newTestGame(t, Options{
		Pack:     testPack(t, chestLevel(t), chestLevel(t)),
		Player:   "ann",
		Progress: store,
		Scores:   store,
	})
	if g.Level() != 1 || g.Lives() != 2 || !g.levelDone(0) {
		t.Errorf("restored Level() = %d, Lives() = %d, done(0) = %v", g.Level(), g.Lives(), g.levelDone(0))
	}

	saves := store.saves
	g.Pause()
	if store.saves != saves+1 {
		t.Error("Pause() should save progress")
	}

	g.RestartCurrentAsDeath()
	if p := store.progress["ann"]; p.Lives != 1 || p.Level != 1 {
		t.Errorf("saved progress = %+v, expected lives 1 level 1", p)
	}

	g.score = 3
	if err := g.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if len(store.scores) != 1 || store.scores[0] != 3 {
		t.Errorf("scores = %v, expected [3]", store.scores)
	}
}

func TestNewRunResetsLives(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t), chestLevel(t))})

	g.RestartCurrentAsDeath()
	g.LoadLevel(1)
	g.Step(frame(core.ActionRestart))
	await(t, g)
	if g.Lives() != config.DefaultLives || g.Level() != 0 || g.Paused() {
		t.Errorf("Lives() = %d, Level() = %d, Paused() = %v", g.Lives(), g.Level(), g.Paused())
	}
}
