package ws

import (
	"encoding/json"
	"log"
	"sync"
)

type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub fans events out to every connection joined to a room. Delivery is
// best-effort: a connection that fails a write is dropped, nothing is
// buffered or retried.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool)}
}

func (h *Hub) AddConnection(roomID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	log.Printf("ws: client joined room %s (total: %d)", roomID, len(h.rooms[roomID]))
}

func (h *Hub) RemoveConnection(roomID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, roomID)
		}
		log.Printf("ws: client left room %s", roomID)
	}
}

// Broadcast sends the event to every connection in the room, the sender
// included.
func (h *Hub) Broadcast(roomID string, event string, data any) {
	payload, err := json.Marshal(WSMessage{Type: event, Data: data})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[roomID]))
	for client := range h.rooms[roomID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.write(payload); err != nil {
			log.Printf("ws: write error: %v", err)
			client.Close()
		}
	}
}
