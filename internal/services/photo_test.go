package services

import (
	"fmt"
	"testing"

	"github.com/almahdy86/t-event/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likeRows(t *testing.T, svc *PhotoService, photoID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, svc.db.Model(&models.Like{}).
		Where("photo_id = ?", photoID).Count(&count).Error)
	return count
}

func TestToggleLike(t *testing.T) {
	db := newTestDB(t)
	svc := NewPhotoService(db)

	owner := createParticipant(t, db, 151)
	photo := createPhoto(t, db, owner.ID)

	t.Run("round trip nets out to zero", func(t *testing.T) {
		liker := createParticipant(t, db, 152)

		result, err := svc.ToggleLike(liker.ID, photo.ID)
		require.NoError(t, err)
		assert.True(t, result.Liked)
		assert.Equal(t, 1, result.Photo.LikeCount)
		assert.Equal(t, int64(1), likeRows(t, svc, photo.ID))

		result, err = svc.ToggleLike(liker.ID, photo.ID)
		require.NoError(t, err)
		assert.False(t, result.Liked)
		assert.Equal(t, 0, result.Photo.LikeCount)
		assert.Equal(t, int64(0), likeRows(t, svc, photo.ID))
	})

	t.Run("count tracks distinct likers", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			liker := createParticipant(t, db, 160+i)
			result, err := svc.ToggleLike(liker.ID, photo.ID)
			require.NoError(t, err)
			assert.True(t, result.Liked)
			assert.Equal(t, i+1, result.Photo.LikeCount)
		}

		// The counter column never drifts from the rows it summarizes.
		assert.Equal(t, int64(5), likeRows(t, svc, photo.ID))
		var fresh models.Photo
		require.NoError(t, db.First(&fresh, photo.ID).Error)
		assert.Equal(t, 5, fresh.LikeCount)
	})

	t.Run("missing photo", func(t *testing.T) {
		liker := createParticipant(t, db, 170)
		_, err := svc.ToggleLike(liker.ID, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletePhotoRemovesLikes(t *testing.T) {
	db := newTestDB(t)
	svc := NewPhotoService(db)

	owner := createParticipant(t, db, 151)
	photo := createPhoto(t, db, owner.ID)
	for i := 0; i < 3; i++ {
		liker := createParticipant(t, db, 152+i)
		_, err := svc.ToggleLike(liker.ID, photo.ID)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(photo.ID))
	assert.Equal(t, int64(0), likeRows(t, svc, photo.ID))

	var count int64
	require.NoError(t, db.Model(&models.Photo{}).
		Where("id = ?", photo.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPhotoModeration(t *testing.T) {
	db := newTestDB(t)
	svc := NewPhotoService(db)
	owner := createParticipant(t, db, 151)

	photo, err := svc.Create(owner.ID, fmt.Sprintf("/uploads/%d.jpg", owner.ID))
	require.NoError(t, err)
	assert.False(t, photo.IsApproved)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.ListApproved()
	require.NoError(t, err)
	assert.Empty(t, approved)

	_, err = svc.Approve(photo.ID)
	require.NoError(t, err)

	approved, err = svc.ListApproved()
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, photo.ID, approved[0].ID)
}
