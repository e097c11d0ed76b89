package game

import "github.com/DuDupedrosa/memory-game-api/internal/models"

// State is the room's lifecycle phase, derived from the durable fields
// rather than stored. It is informational: handlers guard on the registry
// and the concrete fields, not on this value.
type State string

const (
	StateWaitingForGuest State = "WAITING_FOR_GUEST"
	StateReadyToStart    State = "READY_TO_START"
	StateInProgress      State = "IN_PROGRESS"
)

func DeriveState(room *models.Room) State {
	switch {
	case room.GuestID == nil:
		return StateWaitingForGuest
	case room.MatchRandomNumber != nil:
		return StateInProgress
	case room.PlayerTwoIsReadyToPlay:
		return StateReadyToStart
	default:
		return StateWaitingForGuest
	}
}
