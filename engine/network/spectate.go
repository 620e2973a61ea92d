package network

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/1siamBot/bughunt/engine/core"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 8
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub serves snapshots to websocket spectators. Publish is called from the
// game goroutine and never blocks; when the hub falls behind only the latest
// snapshot is kept, and a slow spectator misses frames rather than stalling
// the others.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	seq    uint64
	latest chan Frame
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Spectating is read-only, so any origin may watch.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		latest:  make(chan Frame, 1),
	}
}

// Publish queues a snapshot, replacing one that has not been sent yet
func (h *Hub) Publish(s core.Snapshot) {
	h.seq++
	f := Frame{Seq: h.seq, Snapshot: s}
	for {
		select {
		case h.latest <- f:
			return
		default:
		}
		select {
		case <-h.latest:
		default:
		}
	}
}

// Run encodes queued frames and hands them to every spectator until ctx ends.
// On return all spectator connections are closed.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-h.latest:
			data, err := EncodeFrame(f)
			if err != nil {
				log.Printf("[spectate] %v", err)
				continue
			}
			h.broadcast(data)
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// spectator is behind; drop this frame for it
		}
	}
}

// Clients returns the number of connected spectators
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams frames until the peer leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[spectate] upgrade:", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("[spectate] %s joined (%d watching)", r.RemoteAddr, n)

	done := make(chan struct{})
	go h.writeLoop(c, done)
	h.readLoop(c)
	close(done)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	conn.Close()
	log.Printf("[spectate] %s left", r.RemoteAddr)
}

// readLoop discards anything the spectator sends and returns when it goes away
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(1 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"),
			time.Now().Add(time.Second))
		c.conn.Close()
	}
}
