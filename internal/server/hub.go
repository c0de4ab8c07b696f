package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"forex-dashboard/internal/observability"
)

// Hub pushes reload notifications to connected dashboard clients. The UI
// subscribes once and refetches its datasets whenever the artifact cache
// generation changes.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	metrics  *observability.Metrics

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	// writeMu serializes broadcasts: gorilla/websocket allows at most
	// one concurrent writer per connection.
	writeMu sync.Mutex
}

// reloadMessage is the payload broadcast after a successful reload.
type reloadMessage struct {
	Event      string `json:"event"`
	Generation string `json:"generation"`
}

// NewHub creates a websocket hub.
func NewHub(logger *log.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard UI and API share an origin in production;
			// the reverse proxy enforces it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  logger,
		metrics: metrics,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the request and keeps the connection registered until
// the client goes away. Clients never send meaningful frames; the read
// loop only detects closure.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.WSClients.Inc()
	}

	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, registered := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()

	conn.Close()
	if registered && h.metrics != nil {
		h.metrics.WSClients.Dec()
	}
}

// NotifyReload broadcasts the new cache generation to all clients.
// Clients that fail the write are dropped. Broadcasts run one at a
// time so overlapping reloads cannot write the same connection
// concurrently.
func (h *Hub) NotifyReload(generation string) {
	msg := reloadMessage{Event: "reload", Generation: generation}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.drop(conn)
		}
	}
}
