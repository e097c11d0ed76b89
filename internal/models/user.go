package models

import "time"

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	NickName     string     `gorm:"size:100;uniqueIndex;not null" json:"nickName"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
