package services

import (
	"math/rand"

	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type LotteryService struct {
	db *gorm.DB
}

func NewLotteryService(db *gorm.DB) *LotteryService {
	return &LotteryService{db: db}
}

// EligibleEntry is one candidate for the draw: a participant with at
// least one correct trivia answer.
type EligibleEntry struct {
	ParticipantID uint   `json:"participant_id"`
	UID           string `json:"uid"`
	FullName      string `json:"full_name"`
	Number        int    `json:"number"`
	CorrectCount  int    `json:"correct_count"`
}

// Winner is an eligible entry with its draw rank; rank 1 was picked first
// and takes the best prize.
type Winner struct {
	EligibleEntry
	Rank int `json:"rank"`
}

func (s *LotteryService) EligiblePool() ([]EligibleEntry, error) {
	var pool []EligibleEntry
	err := s.db.Model(&models.Answer{}).
		Select(`participants.id AS participant_id,
			participants.uid,
			participants.full_name,
			participants.number,
			COUNT(*) AS correct_count`).
		Joins("JOIN participants ON participants.id = answers.participant_id").
		Where("answers.is_correct = ?", true).
		Group("participants.id, participants.uid, participants.full_name, participants.number").
		Order("participants.number ASC").
		Scan(&pool).Error
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// Draw samples k winners from the pool without replacement, uniformly at
// random, assigning ranks in pick order. The caller's slice is copied, so
// overlapping draws from a multi-instance admin surface cannot corrupt
// each other's pools. Draws are independent: winning one draw does not
// exclude a participant from the next.
func Draw(pool []EligibleEntry, k int) ([]Winner, error) {
	if k <= 0 || k > len(pool) {
		return nil, ErrInsufficientEligible
	}

	remaining := make([]EligibleEntry, len(pool))
	copy(remaining, pool)

	winners := make([]Winner, 0, k)
	for rank := 1; rank <= k; rank++ {
		i := rand.Intn(len(remaining))
		winners = append(winners, Winner{EligibleEntry: remaining[i], Rank: rank})
		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return winners, nil
}

func (s *LotteryService) Draw(k int) ([]Winner, error) {
	pool, err := s.EligiblePool()
	if err != nil {
		return nil, err
	}
	return Draw(pool, k)
}
