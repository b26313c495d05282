package services

import (
	"errors"
	"time"

	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type AnswerService struct {
	db *gorm.DB
	// deadline of 0 keeps the original behavior: any answer arriving
	// before the next question activates is accepted.
	deadline time.Duration
}

func NewAnswerService(db *gorm.DB, deadline time.Duration) *AnswerService {
	return &AnswerService{db: db, deadline: deadline}
}

// SubmitResult is what the submitting session gets back. AlreadyAnswered
// is the conflict outcome: a second submission for the same question is
// answered with the flag, never with an error.
type SubmitResult struct {
	AlreadyAnswered bool `json:"already_answered"`
	IsCorrect       bool `json:"is_correct"`
	CorrectIndex    int  `json:"correct_index"`
}

// Submit records one answer per participant per question. The uniqueness
// check and the insert are a single atomic step: the composite unique
// index decides races, and a duplicate-key failure is read back as the
// already-answered signal rather than surfaced.
func (s *AnswerService) Submit(participantID, questionID uint, selectedOption, elapsedMs int) (*SubmitResult, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, ErrNotFound
	}
	if !question.IsActive {
		return nil, ErrStaleQuestion
	}
	if s.deadline > 0 && question.ActivatedAt != nil &&
		time.Since(*question.ActivatedAt) > s.deadline {
		return nil, ErrAnswerDeadlinePassed
	}

	answer := models.Answer{
		ParticipantID:  participantID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
		IsCorrect:      selectedOption == question.CorrectIndex,
		ElapsedMs:      elapsedMs,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &SubmitResult{AlreadyAnswered: true, CorrectIndex: question.CorrectIndex}, nil
		}
		return nil, err
	}

	return &SubmitResult{
		IsCorrect:    answer.IsCorrect,
		CorrectIndex: question.CorrectIndex,
	}, nil
}

type LeaderboardEntry struct {
	ParticipantID uint   `json:"participant_id"`
	FullName      string `json:"full_name"`
	Number        int    `json:"number"`
	CorrectCount  int    `json:"correct_count"`
	TotalAnswers  int    `json:"total_answers"`
	TotalElapsed  int    `json:"total_elapsed_ms"`
}

// Leaderboard aggregates standings: most correct answers first, ties
// broken by total response time.
func (s *AnswerService) Leaderboard() ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.Model(&models.Answer{}).
		Select(`participants.id AS participant_id,
			participants.full_name,
			participants.number,
			COUNT(*) FILTER (WHERE answers.is_correct) AS correct_count,
			COUNT(*) AS total_answers,
			COALESCE(SUM(answers.elapsed_ms), 0) AS total_elapsed`).
		Joins("JOIN participants ON participants.id = answers.participant_id").
		Group("participants.id, participants.full_name, participants.number").
		Order("correct_count DESC, total_elapsed ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
