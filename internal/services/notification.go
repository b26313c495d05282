package services

import (
	"errors"

	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Send persists the notification for the audit log and returns it for
// broadcasting. Delivery to sessions that are offline is not attempted.
func (s *NotificationService) Send(title, message string) (*models.Notification, error) {
	if title == "" && message == "" {
		return nil, errors.New("empty notification")
	}
	notification := models.Notification{Title: title, Message: message}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *NotificationService) History(limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.db.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
