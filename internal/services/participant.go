package services

import (
	"errors"
	"time"

	"github.com/almahdy86/t-event/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Each category owns a closed slice of the 1..200 number space. Numbers
// are never shared across categories and never reused while the holder's
// row exists.
type NumberRange struct {
	Low  int
	High int
}

var categoryRanges = map[string]NumberRange{
	models.CategoryBoard: {Low: 1, High: 20},
	models.CategoryStaff: {Low: 21, High: 150},
	models.CategoryGuest: {Low: 151, High: 200},
}

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

type RegisterResult struct {
	Participant *models.Participant `json:"participant"`
	IsNew       bool                `json:"is_new"`
}

// Register creates a participant with the lowest free number in the
// category's range. Registering an already-known identity is idempotent
// and returns the existing row. A concurrent registration racing for the
// same number loses on the unique index and retries with a fresh pick.
func (s *ParticipantService) Register(uid, fullName, category string) (*RegisterResult, error) {
	rng, ok := categoryRanges[category]
	if !ok {
		return nil, ErrUnknownCategory
	}

	if uid == "" {
		uid = uuid.NewString()
	} else {
		var existing models.Participant
		if err := s.db.Where("uid = ?", uid).First(&existing).Error; err == nil {
			return &RegisterResult{Participant: &existing, IsNew: false}, nil
		}
	}

	for attempt := 0; attempt < 3; attempt++ {
		participant, err := s.tryRegister(uid, fullName, category, rng)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either another request just took the picked number, or the
			// same identity registered concurrently. The latter is
			// idempotent success.
			var existing models.Participant
			if lookupErr := s.db.Where("uid = ?", uid).First(&existing).Error; lookupErr == nil {
				return &RegisterResult{Participant: &existing, IsNew: false}, nil
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return &RegisterResult{Participant: participant, IsNew: true}, nil
	}
	// Only lost number races land here; a genuinely empty range fails
	// inside tryRegister as pool exhaustion.
	return nil, ErrRegistrationBusy
}

func (s *ParticipantService) tryRegister(uid, fullName, category string, rng NumberRange) (*models.Participant, error) {
	var taken []int
	if err := s.db.Model(&models.Participant{}).
		Where("number BETWEEN ? AND ?", rng.Low, rng.High).
		Pluck("number", &taken).Error; err != nil {
		return nil, err
	}

	number, ok := lowestAvailableNumber(taken, rng)
	if !ok {
		return nil, ErrNumberPoolExhausted
	}

	participant := models.Participant{
		UID:        uid,
		FullName:   fullName,
		Category:   category,
		Number:     number,
		LastSeenAt: time.Now(),
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// lowestAvailableNumber picks the smallest number in the range that is not
// already taken. A freed number becomes assignable again only once it is
// the lowest gap.
func lowestAvailableNumber(taken []int, rng NumberRange) (int, bool) {
	used := make(map[int]bool, len(taken))
	for _, n := range taken {
		used[n] = true
	}
	for n := rng.Low; n <= rng.High; n++ {
		if !used[n] {
			return n, true
		}
	}
	return 0, false
}

func (s *ParticipantService) GetByUID(uid string) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.Where("uid = ?", uid).First(&participant).Error; err != nil {
		return nil, ErrNotFound
	}
	return &participant, nil
}

func (s *ParticipantService) List() ([]models.Participant, error) {
	var participants []models.Participant
	if err := s.db.Order("number ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// Delete removes a participant and everything they produced. Likes are
// removed first with the owning photos' like_count decremented in the same
// transaction, so the denormalized counts stay equal to the row counts.
func (s *ParticipantService) Delete(id uint) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.First(&participant, id).Error; err != nil {
		return nil, ErrNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var likes []models.Like
		if err := tx.Where("participant_id = ?", id).Find(&likes).Error; err != nil {
			return err
		}
		for _, like := range likes {
			if err := tx.Model(&models.Photo{}).Where("id = ?", like.PhotoID).
				Update("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("participant_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		var photoIDs []uint
		if err := tx.Model(&models.Photo{}).Where("participant_id = ?", id).
			Pluck("id", &photoIDs).Error; err != nil {
			return err
		}
		if len(photoIDs) > 0 {
			if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", photoIDs).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("participant_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Participant{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// SetOnline mirrors the presence tracker's view into the store so the
// admin dashboard can show who is connected.
func (s *ParticipantService) SetOnline(uid string, online bool) {
	updates := map[string]interface{}{"is_online": online}
	if online {
		updates["last_seen_at"] = time.Now()
	}
	if err := s.db.Model(&models.Participant{}).Where("uid = ?", uid).
		Updates(updates).Error; err != nil {
		// Presence is advisory; a failed mirror is not worth failing the join.
		return
	}
}
