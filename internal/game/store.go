package game

import "github.com/DuDupedrosa/memory-game-api/internal/models"

// Store is the durable collaborator the coordinator writes through. Find
// methods return (nil, nil) on a missing row; a non-nil error always means
// the store itself failed. Updates are plain read-modify-write with no
// optimistic locking; concurrent writers on one room are last-write-wins.
type Store interface {
	FindRoom(roomID uint) (*models.Room, error)

	// StartMatch persists the shuffle seed and hands the first turn to the
	// starting player.
	StartMatch(roomID uint, matchRandomNumber int, playerID string) error

	SetTurn(roomID uint, playerID string) error

	SetPlayerTwoReady(roomID uint, ready bool) error

	// ResetRoom returns the durable room to its waiting-for-guest default:
	// no guest, players = [owner], turn token back to the owner, second
	// player not ready.
	ResetRoom(roomID uint, ownerID string) error

	FindScore(roomID uint, playerID string) (*models.Score, error)
	CreateScore(score *models.Score) error
	SetScoreValue(scoreID uint, value int) error
	DeleteScores(roomID uint) error
}
