package services

import (
	"errors"

	"github.com/DuDupedrosa/memory-game-api/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const recentRoomsLimit = 5

type RoomService struct {
	db    *gorm.DB
	users *UserService
}

func NewRoomService(db *gorm.DB, users *UserService) *RoomService {
	return &RoomService{db: db, users: users}
}

func (s *RoomService) Create(ownerID, password string, level int) (*models.Room, error) {
	if _, err := s.users.GetData(ownerID); err != nil {
		return nil, err
	}
	if !models.ValidLevel(level) {
		return nil, ErrIncorrectLevel
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	room := models.Room{
		OwnerID:              ownerID,
		Players:              models.PlayerList{ownerID},
		PasswordHash:         string(hash),
		Level:                level,
		PlayerReleasedToPlay: ownerID,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// SignIn checks the room password and claims the guest slot when it is
// vacant and the caller is not the owner. Any leftover score rows from a
// previous match are always wiped on entry.
func (s *RoomService) SignIn(roomID uint, password, userID string) (*models.Room, error) {
	if _, err := s.users.GetData(userID); err != nil {
		return nil, err
	}

	room, err := s.GetByID(roomID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	if userID != room.OwnerID && room.GuestID == nil {
		players := models.PlayerList{room.OwnerID, userID}
		err := s.db.Model(room).
			Select("GuestID", "Players").
			Updates(models.Room{GuestID: &userID, Players: players}).Error
		if err != nil {
			return nil, err
		}
	}

	if err := s.db.Where("room_id = ?", room.ID).Delete(&models.Score{}).Error; err != nil {
		return nil, err
	}

	return room, nil
}

func (s *RoomService) GetByID(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetRoomUsers(roomID uint) ([]models.User, error) {
	room, err := s.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if len(room.Players) == 0 {
		return nil, ErrRoomWithoutUsers
	}
	return s.users.GetUsersByIDs(room.Players)
}

// PlayerAllowedToPlay reports whether the user currently holds the turn
// token.
func (s *RoomService) PlayerAllowedToPlay(roomID uint, userID string) (bool, error) {
	if _, err := s.users.GetData(userID); err != nil {
		return false, err
	}
	room, err := s.GetByID(roomID)
	if err != nil {
		return false, err
	}
	return room.PlayerReleasedToPlay == userID, nil
}

// ChangeAllowedToPlay is the HTTP twin of the websocket turn change: it
// hands the turn token to the player who does not hold it.
func (s *RoomService) ChangeAllowedToPlay(roomID uint) (string, error) {
	room, err := s.GetByID(roomID)
	if err != nil {
		return "", err
	}

	otherPlayer := ""
	for _, p := range room.Players {
		if p != room.PlayerReleasedToPlay {
			otherPlayer = p
			break
		}
	}
	if otherPlayer == "" {
		return "", ErrOtherPlayerNotFound
	}

	err = s.db.Model(room).Update("player_released_to_play", otherPlayer).Error
	if err != nil {
		return "", err
	}
	return otherPlayer, nil
}

func (s *RoomService) RecentByOwner(ownerID string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(recentRoomsLimit).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) AllByOwner(ownerID string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) UpdatePassword(roomID uint, ownerID, newPassword string) error {
	room, err := s.GetByID(roomID)
	if err != nil {
		return err
	}
	if room.OwnerID != ownerID {
		return ErrNotRoomOwner
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(room).Update("password_hash", string(hash)).Error
}

func (s *RoomService) UpdateLevel(roomID uint, ownerID string, level int) error {
	if !models.ValidLevel(level) {
		return ErrIncorrectLevel
	}

	room, err := s.GetByID(roomID)
	if err != nil {
		return err
	}
	if room.OwnerID != ownerID {
		return ErrNotRoomOwner
	}
	return s.db.Model(room).Update("level", level).Error
}

// Delete removes the room and its score rows. Owner only.
func (s *RoomService) Delete(roomID uint, ownerID string) error {
	room, err := s.GetByID(roomID)
	if err != nil {
		return err
	}
	if room.OwnerID != ownerID {
		return ErrNotRoomOwner
	}

	if err := s.db.Where("room_id = ?", roomID).Delete(&models.Score{}).Error; err != nil {
		return err
	}
	return s.db.Delete(room).Error
}
