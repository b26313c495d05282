package services

import (
	"testing"

	"github.com/almahdy86/t-event/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func activeQuestionIDs(t *testing.T, db *gorm.DB) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&models.Question{}).
		Where("is_active = ?", true).Pluck("id", &ids).Error)
	return ids
}

func TestActivateQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db)

	first, err := svc.Create("Which hall hosts the finale?",
		[]string{"North", "East", "Main", "South"}, 2)
	require.NoError(t, err)
	second, err := svc.Create("When do doors open?",
		[]string{"18:00", "19:00"}, 0)
	require.NoError(t, err)

	t.Run("none active before the first activation", func(t *testing.T) {
		active, err := svc.GetActive()
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("activation replaces the previous live question", func(t *testing.T) {
		activated, err := svc.Activate(first.ID)
		require.NoError(t, err)
		assert.True(t, activated.IsActive)
		require.NotNil(t, activated.ActivatedAt)

		activated, err = svc.Activate(second.ID)
		require.NoError(t, err)
		assert.True(t, activated.IsActive)

		assert.Equal(t, []uint{second.ID}, activeQuestionIDs(t, db))
	})

	t.Run("store refuses a second live question", func(t *testing.T) {
		// A write that sidesteps the service, the way a racing
		// activation's commit would land, fails on the unique index
		// instead of producing two live questions.
		err := db.Model(&models.Question{}).Where("id = ?", first.ID).
			Update("is_active", true).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
		assert.Equal(t, []uint{second.ID}, activeQuestionIDs(t, db))
	})

	t.Run("missing question", func(t *testing.T) {
		_, err := svc.Activate(9999)
		assert.ErrorIs(t, err, ErrNotFound)
		// The failed activation must not have torn down the live one.
		assert.Equal(t, []uint{second.ID}, activeQuestionIDs(t, db))
	})

	t.Run("deactivate leaves none live", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(second.ID))
		active, err := svc.GetActive()
		require.NoError(t, err)
		assert.Nil(t, active)
	})
}
