package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-lode/internal/games/lode"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) lode.LevelStatus {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	var st lode.LevelStatus
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	return st
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSpectatorReceivesUpdates(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	hub.Publish(lode.LevelStatus{Player: "ann", LevelNumber: 3, LivesLeft: 4})

	conn := dial(t, srv)
	first := readStatus(t, conn)
	if first.Player != "ann" || first.LevelNumber != 3 {
		t.Errorf("first message = %+v, expected latest status of ann", first)
	}

	waitFor(t, func() bool { return hub.Count() == 1 })
	hub.Publish(lode.LevelStatus{Player: "ann", LevelNumber: 3, ChestsPicked: 2, ChestsTotal: 5})
	next := readStatus(t, conn)
	if next.ChestsPicked != 2 || next.ChestsTotal != 5 {
		t.Errorf("update = %+v, expected chests 2/5", next)
	}
}

func TestSpectatorDisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Count() == 1 })
	conn.Close()
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestStatusEndpoint(t *testing.T) {
	hub := NewHub(nil)
	hub.Publish(lode.LevelStatus{Player: "zed", LevelNumber: 1})
	hub.Publish(lode.LevelStatus{Player: "amy", LevelNumber: 7})
	hub.Forget("zed")
	hub.Publish(lode.LevelStatus{Player: "bob", LevelNumber: 2})

	rec := httptest.NewRecorder()
	hub.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, expected 200", rec.Code)
	}
	var got []lode.LevelStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(got) != 2 || got[0].Player != "amy" || got[1].Player != "bob" {
		t.Errorf("/status = %+v, expected amy then bob", got)
	}
}
