package lode

// LevelStatus is the snapshot pushed to status listeners after every load,
// chest pickup and stage-over.
type LevelStatus struct {
	Player       string `json:"player,omitempty"`
	LevelNumber  int    `json:"level"`
	LevelTitle   string `json:"title,omitempty"`
	LivesLeft    int    `json:"lives"`
	ChestsPicked int    `json:"chests_picked"`
	ChestsTotal  int    `json:"chests_total"`
	PursuerCount int    `json:"pursuers"`
	LevelDone    bool   `json:"level_done"`
	Score        int    `json:"score"`
	Paused       bool   `json:"paused"`
	Message      string `json:"message,omitempty"`
}

// Level status bytes, one per level.
const (
	statusNotDone byte = 0
	statusDone    byte = 1
)

// AddStatusListener registers fn to receive LevelStatus snapshots.
// Listeners run on the simulation goroutine and must not block.
func (g *Game) AddStatusListener(fn func(LevelStatus)) {
	if fn != nil {
		g.listeners = append(g.listeners, fn)
	}
}

// Status returns the current snapshot.
func (g *Game) Status() LevelStatus {
	st := LevelStatus{
		Player:      g.opts.Player,
		LevelNumber: g.level,
		LevelTitle:  g.pack.Title(g.level),
		LivesLeft:   g.lives,
		LevelDone:   g.levelDone(g.level),
		Score:       g.score,
		Paused:      g.paused,
		Message:     g.message,
	}
	if g.stage != nil && g.stage.Loaded() {
		st.ChestsPicked = g.stage.ChestsPicked()
		st.ChestsTotal = g.stage.TotalChests()
		st.PursuerCount = len(g.stage.Pursuers())
	}
	return st
}

func (g *Game) pushStatus() {
	if len(g.listeners) == 0 {
		return
	}
	st := g.Status()
	for _, fn := range g.listeners {
		fn(st)
	}
}

func (g *Game) levelDone(level int) bool {
	return level >= 0 && level < len(g.statuses) && g.statuses[level] == statusDone
}
