package models

import "time"

// Score is the running point counter for one player in one room. Rows are
// deleted wholesale when a round is won or the room resets, so at most one
// live row exists per (room, player).
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"roomId"`
	PlayerID  string    `gorm:"size:36;not null;index" json:"playerId"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
