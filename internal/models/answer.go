package models

import "time"

// SelectedOption is -1 when the client's countdown expired and an empty
// submission was sent automatically.
type Answer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ParticipantID  uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"participant_id"`
	QuestionID     uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"question_id"`
	SelectedOption int       `gorm:"not null" json:"selected_option"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	ElapsedMs      int       `gorm:"not null;default:0" json:"elapsed_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

const NoAnswerOption = -1
