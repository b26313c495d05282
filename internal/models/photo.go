package models

import "time"

// LikeCount is denormalized for gallery ordering; every like/unlike
// adjusts it in the same transaction that touches the likes table.
type Photo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ParticipantID uint      `gorm:"not null;index" json:"participant_id"`
	URL           string    `gorm:"type:text;not null" json:"url"`
	IsApproved    bool      `gorm:"not null;default:false;index" json:"is_approved"`
	LikeCount     int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Like struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PhotoID       uint      `gorm:"not null;uniqueIndex:idx_like_unique" json:"photo_id"`
	ParticipantID uint      `gorm:"not null;uniqueIndex:idx_like_unique" json:"participant_id"`
	CreatedAt     time.Time `json:"created_at"`
}
