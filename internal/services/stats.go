package services

import (
	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type Stats struct {
	TotalParticipants int64 `json:"total_participants"`
	OnlineCount       int   `json:"online_count"`
	ApprovedPhotos    int64 `json:"approved_photos"`
	PendingPhotos     int64 `json:"pending_photos"`
	TotalAnswers      int64 `json:"total_answers"`
	CorrectAnswers    int64 `json:"correct_answers"`
}

// Collect gathers dashboard totals. The online count comes from the
// presence tracker, not the store, so it is passed in by the caller.
func (s *StatsService) Collect(onlineCount int) (*Stats, error) {
	stats := &Stats{OnlineCount: onlineCount}

	if err := s.db.Model(&models.Participant{}).Count(&stats.TotalParticipants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Photo{}).Where("is_approved = ?", true).
		Count(&stats.ApprovedPhotos).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Photo{}).Where("is_approved = ?", false).
		Count(&stats.PendingPhotos).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Answer{}).Count(&stats.TotalAnswers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Answer{}).Where("is_correct = ?", true).
		Count(&stats.CorrectAnswers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
