// Package livereload keeps preview browsers in sync with rendered output: a
// WebSocket hub that broadcasts RELOAD and ERROR messages, and a debounced
// file watcher that decides when to send them.
package livereload

import (
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Message types sent to browsers.
const (
	MsgReload = "RELOAD"
	MsgError  = "ERROR"
)

// Hub tracks connected preview browsers.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub creates an empty hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Preview is local only
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades r and keeps the connection registered until the
// browser goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Printf("WebSocket error: %v", err)
			}
			return
		}

		switch msg["type"] {
		case "HELLO":
			h.mu.Lock()
			err := conn.WriteJSON(map[string]interface{}{"type": "ACK"})
			h.mu.Unlock()
			if err != nil {
				return
			}
		default:
			h.logger.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

// Notify sends a message of msgType, merged with data, to every client.
func (h *Hub) Notify(msgType string, data map[string]interface{}) {
	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteJSON(message); err != nil {
			h.logger.Printf("Failed to send message to client: %v", err)
		}
	}
}

// Reload tells every browser to reload.
func (h *Hub) Reload() {
	h.Notify(MsgReload, nil)
}

// Error reports a failed render to every browser.
func (h *Hub) Error(err error) {
	h.Notify(MsgError, map[string]interface{}{"error": err.Error()})
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
