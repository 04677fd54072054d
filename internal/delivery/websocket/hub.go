package websocket

import (
	"encoding/json"

	"clinic-booking-api/internal/service"

	"github.com/sirupsen/logrus"
)

// Hub fans booking events out to every connected live-board client. Clinics
// put these boards in waiting rooms, so updates are broadcast to all
// connections and filtered client-side by doctor.
type Hub struct {
	log        *logrus.Logger
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Register, unregister and broadcast all go
// through this single goroutine so no mutex is needed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debugf("Live board client connected, total=%d", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Debugf("Live board client disconnected, total=%d", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Publish implements service.LiveBoardPublisher. Never blocks the caller:
// when the broadcast buffer is full the event is dropped and logged.
func (h *Hub) Publish(event *service.BoardEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Warnf("Failed to marshal board event: %+v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("Board event dropped, broadcast buffer full")
	}
}
