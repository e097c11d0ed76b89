package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client wraps one game-channel connection. Writes are serialized with a
// mutex because broadcasts and caller-only replies come from different
// goroutines.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
	rooms  map[string]bool
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{hub: hub, conn: conn, rooms: make(map[string]bool)}
}

// Join subscribes the connection to a room's broadcasts.
func (c *Client) Join(roomID string) {
	c.mu.Lock()
	already := c.rooms[roomID]
	c.rooms[roomID] = true
	c.mu.Unlock()

	if !already {
		c.hub.AddConnection(roomID, c)
	}
}

// Emit sends an event to this connection only.
func (c *Client) Emit(event string, data any) {
	payload, err := json.Marshal(WSMessage{Type: event, Data: data})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	if err := c.write(payload); err != nil {
		log.Printf("ws: write error: %v", err)
		c.Close()
	}
}

func (c *Client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close drops the connection from every room it joined and closes the
// socket. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	rooms := make([]string, 0, len(c.rooms))
	for roomID := range c.rooms {
		rooms = append(rooms, roomID)
	}
	c.mu.Unlock()

	for _, roomID := range rooms {
		c.hub.RemoveConnection(roomID, c)
	}
	c.conn.Close()
}
