package live

import (
	"log"
	"net/http"
	"sync"

	"wellen-backend/internal/metrics"
	"wellen-backend/internal/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is one live-feed message pushed to connected dashboards.
type Event struct {
	Type       string             `json:"type"` // "submission"
	WaveID     int                `json:"wave_id"`
	Submission *models.Submission `json:"submission,omitempty"`
}

// Hub fans submission events out to all connected websocket clients. Dropped
// writes disconnect the client; reconnecting picks up live again.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
	}
}

// Run drains the broadcast channel; call it once in a goroutine.
func (h *Hub) Run() {
	for ev := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(ev); err != nil {
				client.Close()
				delete(h.clients, client)
				metrics.LiveClients.Dec()
			}
		}
		h.clientsMux.Unlock()
	}
}

// PublishSubmission satisfies the progress publisher hook of the submission
// service. Non-blocking: events are dropped when the buffer is full.
func (h *Hub) PublishSubmission(s models.Submission) {
	select {
	case h.broadcast <- Event{Type: "submission", WaveID: s.WaveID, Submission: &s}:
	default:
	}
}

// HandleWS upgrades the request and keeps the connection registered until the
// client goes away. Inbound messages are read only to detect disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Live] websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()
	metrics.LiveClients.Inc()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			metrics.LiveClients.Dec()
			break
		}
	}
}
