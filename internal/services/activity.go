package services

import (
	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) List() ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.Order("name ASC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// Toggle sets an activity live or dormant. The transition is
// unconditional: there is no guard and the last admin write wins.
func (s *ActivityService) Toggle(name string, isLive bool) (*models.Activity, error) {
	var activity models.Activity
	if err := s.db.Where("name = ?", name).First(&activity).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := s.db.Model(&activity).Update("is_live", isLive).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// Seed creates rows for the known activity names so toggling never has to
// upsert. Existing rows keep their state.
func (s *ActivityService) Seed(names []string) error {
	for _, name := range names {
		var existing models.Activity
		if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}
		if err := s.db.Create(&models.Activity{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
