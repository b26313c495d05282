package models

import "time"

type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	IsLive    bool      `gorm:"not null;default:false" json:"is_live"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Known activity names, seeded at migration time.
const (
	ActivityTrivia  = "trivia"
	ActivityGallery = "gallery"
	ActivityLottery = "lottery"
	ActivityFinale  = "finale"
)
