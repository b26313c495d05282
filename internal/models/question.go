package models

import "time"

type Question struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Text         string           `gorm:"type:text;not null" json:"text"`
	CorrectIndex int              `gorm:"not null" json:"correct_index"`
	IsActive     bool             `gorm:"not null;default:false;index" json:"is_active"`
	ActivatedAt  *time.Time       `json:"activated_at,omitempty"`
	Options      []QuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type QuestionOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
}
