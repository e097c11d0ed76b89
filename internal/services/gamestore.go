package services

import (
	"errors"

	"github.com/DuDupedrosa/memory-game-api/internal/models"

	"gorm.io/gorm"
)

// GameStore is the gorm-backed durable store the game coordinator writes
// through. Missing rows come back as (nil, nil); errors mean postgres
// itself failed.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) FindRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (s *GameStore) StartMatch(roomID uint, matchRandomNumber int, playerID string) error {
	return s.db.Model(&models.Room{}).Where("id = ?", roomID).
		Updates(map[string]any{
			"match_random_number":     matchRandomNumber,
			"player_released_to_play": playerID,
		}).Error
}

func (s *GameStore) SetTurn(roomID uint, playerID string) error {
	return s.db.Model(&models.Room{}).Where("id = ?", roomID).
		Update("player_released_to_play", playerID).Error
}

func (s *GameStore) SetPlayerTwoReady(roomID uint, ready bool) error {
	return s.db.Model(&models.Room{}).Where("id = ?", roomID).
		Update("player_two_is_ready_to_play", ready).Error
}

func (s *GameStore) ResetRoom(roomID uint, ownerID string) error {
	return s.db.Model(&models.Room{ID: roomID}).
		Select("GuestID", "Players", "PlayerReleasedToPlay", "PlayerTwoIsReadyToPlay").
		Updates(models.Room{
			GuestID:                nil,
			Players:                models.PlayerList{ownerID},
			PlayerReleasedToPlay:   ownerID,
			PlayerTwoIsReadyToPlay: false,
		}).Error
}

func (s *GameStore) FindScore(roomID uint, playerID string) (*models.Score, error) {
	var score models.Score
	err := s.db.Where("room_id = ? AND player_id = ?", roomID, playerID).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}

func (s *GameStore) CreateScore(score *models.Score) error {
	return s.db.Create(score).Error
}

func (s *GameStore) SetScoreValue(scoreID uint, value int) error {
	return s.db.Model(&models.Score{}).Where("id = ?", scoreID).
		Update("value", value).Error
}

func (s *GameStore) DeleteScores(roomID uint) error {
	return s.db.Where("room_id = ?", roomID).Delete(&models.Score{}).Error
}
