// Package feed streams session status to spectators over WebSocket.
//
// Every session publishes its LevelStatus to a Hub; each connected
// spectator receives one JSON text message per update, starting with the
// latest status of every active player.
package feed

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-lode/internal/games/lode"
)

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Hub fans status updates out to spectators.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	latest   map[string]lode.LevelStatus
	upgrader websocket.Upgrader
	log      *log.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub. A nil logger logs nowhere.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		latest:  make(map[string]lode.LevelStatus),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: logger,
	}
}

// Publish records a status and sends it to every spectator.
// Slow spectators whose buffer is full are dropped.
func (h *Hub) Publish(st lode.LevelStatus) {
	msg, err := json.Marshal(st)
	if err != nil {
		h.log.Error("encode status", "err", err)
		return
	}

	h.mu.Lock()
	h.latest[st.Player] = st
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.log.Warn("dropping slow spectator", "remote", c.conn.RemoteAddr())
	}
}

// Forget removes a player's status, typically when their session ends.
func (h *Hub) Forget(player string) {
	h.mu.Lock()
	delete(h.latest, player)
	h.mu.Unlock()
}

// Latest returns the last status of every player, sorted by player name.
func (h *Hub) Latest() []lode.LevelStatus {
	h.mu.RLock()
	out := make([]lode.LevelStatus, 0, len(h.latest))
	for _, st := range h.latest {
		out = append(out, st)
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, st := range h.latest {
		if len(c.send) == cap(c.send) {
			break
		}
		if msg, err := json.Marshal(st); err == nil {
			c.send <- msg
		}
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ServeHTTP upgrades the request to a WebSocket spectator connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := h.register(conn)
	h.log.Info("spectator connected", "remote", conn.RemoteAddr(), "spectators", h.Count())

	go c.writePump()
	c.readPump()

	h.unregister(c)
	h.log.Info("spectator left", "remote", conn.RemoteAddr())
}

// readPump discards client messages and returns when the connection closes.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Handler serves the spectator socket at /ws and a JSON snapshot at /status.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(h.Latest()); err != nil {
			h.log.Warn("encode status snapshot", "err", err)
		}
	})
	return mux
}
