package services

import (
	"errors"

	"github.com/almahdy86/t-event/internal/models"

	"gorm.io/gorm"
)

type PhotoService struct {
	db *gorm.DB
}

func NewPhotoService(db *gorm.DB) *PhotoService {
	return &PhotoService{db: db}
}

// Create records an uploaded photo as pending moderation. The binary
// itself lives with the storage collaborator; only the reference lands
// here.
func (s *PhotoService) Create(participantID uint, url string) (*models.Photo, error) {
	if url == "" {
		return nil, errors.New("photo url required")
	}
	photo := models.Photo{
		ParticipantID: participantID,
		URL:           url,
	}
	if err := s.db.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListApproved returns the public gallery, most liked first.
func (s *PhotoService) ListApproved() ([]models.Photo, error) {
	var photos []models.Photo
	err := s.db.Where("is_approved = ?", true).
		Order("like_count DESC, created_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (s *PhotoService) ListPending() ([]models.Photo, error) {
	var photos []models.Photo
	err := s.db.Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (s *PhotoService) Approve(id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := s.db.First(&photo, id).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := s.db.Model(&photo).Update("is_approved", true).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (s *PhotoService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, id).Error
	})
}

type LikeResult struct {
	Photo *models.Photo `json:"photo"`
	Liked bool          `json:"liked"`
	ByUID string        `json:"by_uid"`
}

// ToggleLike flips the participant's like on a photo. The existence
// check, the row change, and the like_count bump share one transaction so
// the count can never drift from the rows. If two toggles for the same
// pair race, the loser of the insert hits the unique index and reruns as
// the delete branch, netting out to the original state.
func (s *PhotoService) ToggleLike(participantID, photoID uint) (*LikeResult, error) {
	result, err := s.toggleOnce(participantID, photoID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		result, err = s.toggleOnce(participantID, photoID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PhotoService) toggleOnce(participantID, photoID uint) (*LikeResult, error) {
	var liked bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.First(&photo, photoID).Error; err != nil {
			return ErrNotFound
		}

		res := tx.Where("photo_id = ? AND participant_id = ?", photoID, participantID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Photo{}).Where("id = ?", photoID).
				Update("like_count", gorm.Expr("like_count - 1")).Error
		}

		liked = true
		if err := tx.Create(&models.Like{PhotoID: photoID, ParticipantID: participantID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Photo{}).Where("id = ?", photoID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	var photo models.Photo
	if err := s.db.First(&photo, photoID).Error; err != nil {
		return nil, err
	}
	return &LikeResult{Photo: &photo, Liked: liked}, nil
}
