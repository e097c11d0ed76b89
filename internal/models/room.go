package models

import "time"

// Room is the durable half of a game room. The ephemeral membership view
// lives in the registry and may briefly diverge from Players.
type Room struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	OwnerID                string     `gorm:"size:36;not null;index" json:"ownerId"`
	Owner                  User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	GuestID                *string    `gorm:"size:36" json:"guestId,omitempty"`
	Players                PlayerList `gorm:"serializer:json" json:"players"`
	PasswordHash           string     `gorm:"size:255;not null" json:"-"`
	Level                  int        `gorm:"not null;default:1" json:"level"`
	MatchRandomNumber      *int       `json:"matchRandomNumber,omitempty"`
	PlayerReleasedToPlay   string     `gorm:"size:36" json:"playerReleasedToPlay"`
	PlayerTwoIsReadyToPlay bool       `gorm:"not null;default:false" json:"playerTwoIsReadyToPlay"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

type PlayerList []string

const (
	LevelEasy   = 1
	LevelMedium = 2
	LevelHard   = 3
)

func ValidLevel(level int) bool {
	return level == LevelEasy || level == LevelMedium || level == LevelHard
}
