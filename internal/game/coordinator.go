// Package game is the session coordinator for the two-player memory game:
// room life cycle, turn arbitration, score keeping, win detection and
// reset handling, driven by JSON events on the websocket channel.
package game

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"strconv"

	"github.com/DuDupedrosa/memory-game-api/internal/models"
	"github.com/DuDupedrosa/memory-game-api/internal/registry"
)

var errDurableRoomMissing = errors.New("durable room missing")

// matchRandomNumberMax bounds the shuffle seed sent to both clients.
const matchRandomNumberMax = 1000000

// Client is the connection that triggered an event. Emit reaches only
// that connection.
type Client interface {
	Join(roomID string)
	Emit(event string, data any)
}

// Broadcaster delivers an event to every connection joined to a room,
// the sender included. Delivery is best-effort, at most once.
type Broadcaster interface {
	Broadcast(roomID string, event string, data any)
}

type Coordinator struct {
	registry *registry.Registry
	store    Store
	bus      Broadcaster
}

func NewCoordinator(reg *registry.Registry, store Store, bus Broadcaster) *Coordinator {
	return &Coordinator{registry: reg, store: store, bus: bus}
}

// Dispatch decodes an inbound frame and routes it to its handler. The
// channel does not authenticate the caller: any connection may name any
// room.
func (c *Coordinator) Dispatch(client Client, event string, raw json.RawMessage) {
	switch event {
	case EventCreateRoom:
		var d CreateRoomData
		if decode(client, raw, &d) {
			c.HandleCreateRoom(client, d)
		}
	case EventJoinRoom:
		var d JoinRoomData
		if decode(client, raw, &d) {
			c.HandleJoinRoom(client, d)
		}
	case EventStartGame:
		var d StartGameData
		if decode(client, raw, &d) {
			c.HandleStartGame(client, d)
		}
	case EventFlipCard:
		var d FlipCardData
		if decode(client, raw, &d) {
			c.HandleFlipCard(client, d)
		}
	case EventChangePlayerTurn:
		var d ChangePlayerTurnData
		if decode(client, raw, &d) {
			c.HandleChangePlayerTurn(client, d)
		}
	case EventMakePoint:
		var d MakePointData
		if decode(client, raw, &d) {
			c.HandleMakePoint(client, d)
		}
	case EventGameWin:
		var d GameWinData
		if decode(client, raw, &d) {
			c.HandleGameWin(client, d)
		}
	case EventExitGame:
		var d ExitGameData
		if decode(client, raw, &d) {
			c.HandleExitGame(client, d)
		}
	case EventUserLoggedOut:
		var d ExitGameData
		if decode(client, raw, &d) {
			c.HandleUserLoggedOut(client, d)
		}
	case EventReadyToPlay:
		var d ReadyToPlayData
		if decode(client, raw, &d) {
			c.HandleReadyToPlay(client, d)
		}
	default:
		log.Printf("game: ignoring unknown event %q", event)
	}
}

func decode(client Client, raw json.RawMessage, v any) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		client.Emit(EventError, errMessage("invalid payload"))
		return false
	}
	return true
}

func errMessage(msg string) map[string]any {
	return map[string]any{"message": msg}
}

// HandleCreateRoom registers the volatile room, replacing any previous
// entry for the id, and answers the caller only.
func (c *Coordinator) HandleCreateRoom(client Client, d CreateRoomData) {
	c.registry.Create(d.RoomID, d.OwnerID)
	client.Join(d.RoomID)
	client.Emit(EventRoomCreated, map[string]any{"roomId": d.RoomID})
}

// HandleJoinRoom merges the player into the registry, hydrating the entry
// from the durable room when the registry has never seen this id.
func (c *Coordinator) HandleJoinRoom(client Client, d JoinRoomData) {
	if !c.registry.Join(d.RoomID, d.PlayerID) {
		roomID, ok := parseRoomID(d.RoomID)
		if !ok {
			client.Emit(EventError, errMessage("Room not found"))
			return
		}
		dbRoom, err := c.store.FindRoom(roomID)
		if err != nil {
			log.Printf("game: joinRoom room %s: store lookup failed: %v", d.RoomID, err)
			return
		}
		if dbRoom == nil {
			client.Emit(EventError, errMessage("Room not found"))
			return
		}
		c.registry.Seed(d.RoomID, dbRoom.OwnerID)
		c.registry.Join(d.RoomID, d.PlayerID)
	}

	client.Join(d.RoomID)
	c.bus.Broadcast(d.RoomID, EventPlayerJoined, map[string]any{
		"playerId": d.PlayerID,
		"roomId":   d.RoomID,
	})
}

// HandleStartGame draws the shuffle seed, hands the first turn to the
// requesting player and releases the room to play. A missing durable room
// is reported room-wide, not just to the caller.
func (c *Coordinator) HandleStartGame(client Client, d StartGameData) {
	if !c.registry.Exists(d.RoomID) {
		c.bus.Broadcast(d.RoomID, EventError, errMessage("Room not found"))
		return
	}

	roomID, ok := parseRoomID(d.RoomID)
	if !ok {
		c.bus.Broadcast(d.RoomID, EventError, errMessage("Room not found"))
		return
	}
	dbRoom, err := c.store.FindRoom(roomID)
	if err != nil {
		log.Printf("game: startGame room %s: store lookup failed: %v", d.RoomID, err)
		return
	}
	if dbRoom == nil {
		c.bus.Broadcast(d.RoomID, EventError, errMessage("Room not found"))
		return
	}

	seed := rand.Intn(matchRandomNumberMax)
	if err := c.store.StartMatch(roomID, seed, d.PlayerID); err != nil {
		log.Printf("game: startGame room %s: store update failed: %v", d.RoomID, err)
		return
	}

	log.Printf("game: room %s started, first turn %s", d.RoomID, d.PlayerID)
	c.bus.Broadcast(d.RoomID, EventGameStarted, map[string]any{"roomId": d.RoomID})
}

// HandleFlipCard relays a flip to the room. The clients are authoritative
// for the board, so nothing is validated or persisted here.
func (c *Coordinator) HandleFlipCard(client Client, d FlipCardData) {
	if !c.registry.Exists(d.RoomID) {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}
	c.bus.Broadcast(d.RoomID, EventFlippedCard, map[string]any{
		"roomId": d.RoomID,
		"id":     d.ID,
	})
}

// HandleChangePlayerTurn flips the turn token to the player who does not
// currently hold it.
func (c *Coordinator) HandleChangePlayerTurn(client Client, d ChangePlayerTurnData) {
	if !c.registry.Exists(d.RoomID) {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}

	roomID, ok := parseRoomID(d.RoomID)
	if !ok {
		client.Emit(EventError, errMessage("Db room not found"))
		return
	}
	dbRoom, err := c.store.FindRoom(roomID)
	if err != nil {
		log.Printf("game: changePlayerTurn room %s: store lookup failed: %v", d.RoomID, err)
		return
	}
	if dbRoom == nil {
		client.Emit(EventError, errMessage("Db room not found"))
		return
	}

	otherPlayer := ""
	for _, p := range dbRoom.Players {
		if p != dbRoom.PlayerReleasedToPlay {
			otherPlayer = p
			break
		}
	}
	if otherPlayer == "" {
		client.Emit(EventError, errMessage("otherPlayer not found"))
		return
	}

	if err := c.store.SetTurn(roomID, otherPlayer); err != nil {
		log.Printf("game: changePlayerTurn room %s: store update failed: %v", d.RoomID, err)
		return
	}

	c.bus.Broadcast(d.RoomID, EventChangedPlayerTurn, map[string]any{
		"roomId":   d.RoomID,
		"playerId": otherPlayer,
	})
}

// HandleMakePoint bumps the player's score row, creating it at 1 on first
// touch. When the room's victory threshold is reached every score row for
// the room is wiped so the next round starts clean; the broadcast still
// carries the winning value and the clients declare the winner.
func (c *Coordinator) HandleMakePoint(client Client, d MakePointData) {
	if !c.registry.Exists(d.RoomID) {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}

	roomID, ok := parseRoomID(d.RoomID)
	if !ok {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}

	score, err := c.store.FindScore(roomID, d.PlayerID)
	if err != nil {
		log.Printf("game: makePoint room %s: score lookup failed: %v", d.RoomID, err)
		return
	}

	if score == nil {
		created := &models.Score{RoomID: roomID, PlayerID: d.PlayerID, Value: 1}
		if err := c.store.CreateScore(created); err != nil {
			log.Printf("game: makePoint room %s: score create failed: %v", d.RoomID, err)
			return
		}
		c.broadcastMarkedPoint(d.RoomID, d.PlayerID, 1)
		return
	}

	dbRoom, err := c.store.FindRoom(roomID)
	if err != nil || dbRoom == nil {
		log.Printf("game: makePoint room %s: room lookup failed: %v", d.RoomID, err)
		return
	}

	updated := score.Value + 1
	threshold := VictoryPointByLevel(dbRoom.Level)
	if threshold > 0 && updated >= threshold {
		if err := c.store.DeleteScores(roomID); err != nil {
			log.Printf("game: makePoint room %s: score reset failed: %v", d.RoomID, err)
			return
		}
		log.Printf("game: room %s round over, %s reached %d", d.RoomID, d.PlayerID, updated)
	} else {
		if err := c.store.SetScoreValue(score.ID, updated); err != nil {
			log.Printf("game: makePoint room %s: score update failed: %v", d.RoomID, err)
			return
		}
	}

	c.broadcastMarkedPoint(d.RoomID, d.PlayerID, updated)
}

func (c *Coordinator) broadcastMarkedPoint(roomID, playerID string, value int) {
	c.bus.Broadcast(roomID, EventMarkedPoint, map[string]any{
		"roomId":   roomID,
		"playerId": playerID,
		"value":    value,
	})
}

// HandleGameWin clears the match state after the clients declared a
// winner. Calling it twice is harmless; the second score wipe is a no-op.
func (c *Coordinator) HandleGameWin(client Client, d GameWinData) {
	if !c.registry.Exists(d.RoomID) {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}

	roomID, ok := parseRoomID(d.RoomID)
	if !ok {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}
	if err := c.clearWinState(roomID); err != nil {
		log.Printf("game: gameWin room %s: %v", d.RoomID, err)
		return
	}

	c.bus.Broadcast(d.RoomID, EventGameWon, map[string]any{
		"roomId":         d.RoomID,
		"winnerPlayerId": d.WinnerPlayerID,
	})
}

// HandleExitGame resets the room so a fresh opponent can join. The owner
// keeps the room; only the guest slot and the round state are dropped.
func (c *Coordinator) HandleExitGame(client Client, d ExitGameData) {
	c.handleLeave(client, d, EventGameExited)
}

// HandleUserLoggedOut runs the same reset as an explicit exit; the two
// differ only in the event the room receives.
func (c *Coordinator) HandleUserLoggedOut(client Client, d ExitGameData) {
	c.handleLeave(client, d, EventLoggedOut)
}

func (c *Coordinator) handleLeave(client Client, d ExitGameData, event string) {
	if !c.registry.Exists(d.RoomID) {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}

	roomID, ok := parseRoomID(d.RoomID)
	if !ok {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}
	if err := c.resetToWaiting(roomID); err != nil {
		log.Printf("game: %s room %s: %v", event, d.RoomID, err)
		return
	}

	log.Printf("game: room %s back to %s", d.RoomID, StateWaitingForGuest)
	c.bus.Broadcast(d.RoomID, event, map[string]any{
		"roomId":   d.RoomID,
		"playerId": d.PlayerID,
	})
}

// HandleReadyToPlay marks the guest as ready and pings the owner's client
// so it can start the match.
func (c *Coordinator) HandleReadyToPlay(client Client, d ReadyToPlayData) {
	if !c.registry.Exists(d.RoomID) {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}

	roomID, ok := parseRoomID(d.RoomID)
	if !ok {
		client.Emit(EventError, errMessage("Room not found"))
		return
	}
	dbRoom, err := c.store.FindRoom(roomID)
	if err != nil {
		log.Printf("game: readyToPlay room %s: store lookup failed: %v", d.RoomID, err)
		return
	}
	if dbRoom == nil {
		log.Printf("game: readyToPlay room %s: durable room missing", d.RoomID)
		return
	}

	if err := c.store.SetPlayerTwoReady(roomID, true); err != nil {
		log.Printf("game: readyToPlay room %s: store update failed: %v", d.RoomID, err)
		return
	}

	c.bus.Broadcast(d.RoomID, EventPlayerReady, map[string]any{
		"ownerId": dbRoom.OwnerID,
	})
}

// clearWinState resets the ready flag and wipes the room's score rows.
// Failures are logged by the caller and never reach the wire.
func (c *Coordinator) clearWinState(roomID uint) error {
	dbRoom, err := c.store.FindRoom(roomID)
	if err != nil {
		return err
	}
	if dbRoom == nil {
		return errDurableRoomMissing
	}
	if err := c.store.SetPlayerTwoReady(roomID, false); err != nil {
		return err
	}
	return c.store.DeleteScores(roomID)
}

// resetToWaiting returns the durable room to its default and drops every
// score row, so any opponent may sign in again.
func (c *Coordinator) resetToWaiting(roomID uint) error {
	dbRoom, err := c.store.FindRoom(roomID)
	if err != nil {
		return err
	}
	if dbRoom == nil {
		return errDurableRoomMissing
	}
	if err := c.store.ResetRoom(roomID, dbRoom.OwnerID); err != nil {
		return err
	}
	return c.store.DeleteScores(roomID)
}

func parseRoomID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
