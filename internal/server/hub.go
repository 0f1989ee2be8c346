package server

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/glasspane-dev/glasspane/internal/preview"
)

// hub fans preview events out to every connected subscriber. A sandbox
// document posts error and navigation events upward; any number of
// tooling clients can watch them over the same socket endpoint.
type hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func newHub() *hub {
	return &hub{clients: make(map[string]*websocket.Conn)}
}

func (h *hub) add(id string, ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = ws
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast sends the event to every client except the sender. Write
// failures drop the client; the read loop notices the closed socket.
func (h *hub) broadcast(senderID string, ev preview.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ws := range h.clients {
		if id == senderID {
			continue
		}
		if err := ws.WriteJSON(ev); err != nil {
			slog.Warn("Failed to write event to subscriber", "clientID", id, "error", err)
			delete(h.clients, id)
			ws.Close()
		}
	}
}
