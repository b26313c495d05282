package services

import (
	"testing"
	"time"

	"github.com/almahdy86/t-event/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countAnswers(t *testing.T, svc *AnswerService, participantID, questionID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, svc.db.Model(&models.Answer{}).
		Where("participant_id = ? AND question_id = ?", participantID, questionID).
		Count(&count).Error)
	return count
}

func TestSubmitAnswer(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnswerService(db, 0)

	participant := createParticipant(t, db, 151)
	question := createQuestion(t, db, 2, true)

	t.Run("correct answer", func(t *testing.T) {
		result, err := svc.Submit(participant.ID, question.ID, 2, 4200)
		require.NoError(t, err)
		assert.False(t, result.AlreadyAnswered)
		assert.True(t, result.IsCorrect)
		assert.Equal(t, 2, result.CorrectIndex)
		assert.Equal(t, int64(1), countAnswers(t, svc, participant.ID, question.ID))
	})

	t.Run("second submission is a conflict result, not an error", func(t *testing.T) {
		result, err := svc.Submit(participant.ID, question.ID, 1, 900)
		require.NoError(t, err)
		assert.True(t, result.AlreadyAnswered)
		assert.Equal(t, 2, result.CorrectIndex)

		// The first answer is immutable and stays the only row.
		assert.Equal(t, int64(1), countAnswers(t, svc, participant.ID, question.ID))
		var answer models.Answer
		require.NoError(t, db.Where("participant_id = ? AND question_id = ?",
			participant.ID, question.ID).First(&answer).Error)
		assert.Equal(t, 2, answer.SelectedOption)
		assert.True(t, answer.IsCorrect)
	})

	t.Run("leaderboard counts the correct answer", func(t *testing.T) {
		entries, err := svc.Leaderboard()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, participant.ID, entries[0].ParticipantID)
		assert.GreaterOrEqual(t, entries[0].CorrectCount, 1)
	})

	t.Run("stale question", func(t *testing.T) {
		dormant := createQuestion(t, db, 0, false)
		other := createParticipant(t, db, 152)

		_, err := svc.Submit(other.ID, dormant.ID, 0, 100)
		assert.ErrorIs(t, err, ErrStaleQuestion)
		assert.Equal(t, int64(0), countAnswers(t, svc, other.ID, dormant.ID))
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := svc.Submit(participant.ID, 9999, 0, 100)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("timed-out empty submission consumes the single slot", func(t *testing.T) {
		other := createParticipant(t, db, 153)

		result, err := svc.Submit(other.ID, question.ID, models.NoAnswerOption, 30000)
		require.NoError(t, err)
		assert.False(t, result.AlreadyAnswered)
		assert.False(t, result.IsCorrect)

		// A late real answer after the auto-submission is refused the
		// same way any duplicate is.
		result, err = svc.Submit(other.ID, question.ID, 2, 31000)
		require.NoError(t, err)
		assert.True(t, result.AlreadyAnswered)
		assert.Equal(t, int64(1), countAnswers(t, svc, other.ID, question.ID))
	})
}

func TestSubmitAnswerDeadline(t *testing.T) {
	t.Run("inside the window", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAnswerService(db, 30*time.Second)
		participant := createParticipant(t, db, 151)
		question := createQuestion(t, db, 1, true)

		result, err := svc.Submit(participant.ID, question.ID, 1, 5000)
		require.NoError(t, err)
		assert.True(t, result.IsCorrect)
	})

	t.Run("after the window", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAnswerService(db, 30*time.Second)
		participant := createParticipant(t, db, 151)
		question := createQuestion(t, db, 1, false)
		expired := time.Now().Add(-time.Minute)
		require.NoError(t, db.Model(question).
			Updates(map[string]interface{}{"is_active": true, "activated_at": expired}).Error)

		_, err := svc.Submit(participant.ID, question.ID, 1, 5000)
		assert.ErrorIs(t, err, ErrAnswerDeadlinePassed)
		assert.Equal(t, int64(0), countAnswers(t, svc, participant.ID, question.ID))
	})
}
