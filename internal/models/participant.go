package models

import "time"

type Participant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UID        string    `gorm:"size:64;uniqueIndex;not null" json:"uid"`
	FullName   string    `gorm:"size:100;not null" json:"full_name"`
	Category   string    `gorm:"size:20;not null;default:'guest'" json:"category"`
	Number     int       `gorm:"uniqueIndex;not null" json:"number"`
	IsOnline   bool      `gorm:"not null;default:false" json:"is_online"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	CategoryBoard = "board"
	CategoryStaff = "staff"
	CategoryGuest = "guest"
)
