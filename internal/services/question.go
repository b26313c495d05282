package services

import (
	"errors"
	"time"

	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

func (s *QuestionService) Create(text string, options []string, correctIndex int) (*models.Question, error) {
	if text == "" || len(options) < 2 {
		return nil, errors.New("question needs text and at least two options")
	}
	if correctIndex < 0 || correctIndex >= len(options) {
		return nil, errors.New("correct index out of range")
	}

	question := models.Question{
		Text:         text,
		CorrectIndex: correctIndex,
	}
	for i, opt := range options {
		question.Options = append(question.Options, models.QuestionOption{
			Text:     opt,
			OrderNum: i,
		})
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) List() ([]models.Question, error) {
	var questions []models.Question
	err := s.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) Get(id uint) (*models.Question, error) {
	var question models.Question
	err := s.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&question, id).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &question, nil
}

// GetActive returns the currently live question, or nil when none is.
func (s *QuestionService) GetActive() (*models.Question, error) {
	var question models.Question
	err := s.db.Where("is_active = ?", true).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// Activate makes question id the one live question. The deactivate-all and
// activate-one steps run in a single transaction so a concurrent reader
// never observes two active questions, or none while one should be live.
// The partial unique index on is_active backs this up against a concurrent
// activation whose commit lands between our two statements: the second
// committer violates the index and reruns, now seeing the other winner.
func (s *QuestionService) Activate(id uint) (*models.Question, error) {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = s.activateOnce(id)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

func (s *QuestionService) activateOnce(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Question{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&models.Question{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": true, "activated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *QuestionService) Deactivate(id uint) error {
	return s.db.Model(&models.Question{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func (s *QuestionService) Update(id uint, text string, options []string, correctIndex int) (*models.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if correctIndex < 0 || correctIndex >= len(options) {
		return nil, errors.New("correct index out of range")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(question).Updates(map[string]interface{}{
			"text":          text,
			"correct_index": correctIndex,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionOption{}).Error; err != nil {
			return err
		}
		for i, opt := range options {
			if err := tx.Create(&models.QuestionOption{
				QuestionID: id,
				Text:       opt,
				OrderNum:   i,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuestionService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, id).Error
	})
}
