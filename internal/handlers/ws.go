package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/DuDupedrosa/memory-game-api/internal/game"
	"github.com/DuDupedrosa/memory-game-api/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub         *ws.Hub
	coordinator *game.Coordinator
}

func NewWSHandler(hub *ws.Hub, coordinator *game.Coordinator) *WSHandler {
	return &WSHandler{hub: hub, coordinator: coordinator}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundFrame mirrors the wire shape of WSMessage with the data still
// raw, so the coordinator decodes it per event.
type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleGameSocket godoc
// @Summary      Game channel
// @Description  Bidirectional JSON event channel for room play. Frames are {"type": event, "data": payload}.
// @Tags         websocket
// @Router       /ws [get]
func (h *WSHandler) HandleGameSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	defer client.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			client.Emit(game.EventError, gin.H{"message": "invalid frame"})
			continue
		}

		h.coordinator.Dispatch(client, frame.Type, frame.Data)
	}
}
