package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(n int) []EligibleEntry {
	pool := make([]EligibleEntry, n)
	for i := range pool {
		pool[i] = EligibleEntry{
			ParticipantID: uint(i + 1),
			Number:        i + 1,
			CorrectCount:  1,
		}
	}
	return pool
}

func TestDraw(t *testing.T) {
	t.Run("three winners from ten", func(t *testing.T) {
		pool := makePool(10)

		winners, err := Draw(pool, 3)
		require.NoError(t, err)
		require.Len(t, winners, 3)

		seen := make(map[uint]bool)
		inPool := make(map[uint]bool)
		for _, e := range pool {
			inPool[e.ParticipantID] = true
		}
		for i, w := range winners {
			assert.Equal(t, i+1, w.Rank)
			assert.True(t, inPool[w.ParticipantID], "winner must come from the pool")
			assert.False(t, seen[w.ParticipantID], "participant drawn twice")
			seen[w.ParticipantID] = true
		}
	})

	t.Run("whole pool", func(t *testing.T) {
		winners, err := Draw(makePool(5), 5)
		require.NoError(t, err)

		seen := make(map[uint]bool)
		for _, w := range winners {
			seen[w.ParticipantID] = true
		}
		assert.Len(t, seen, 5, "drawing the whole pool must cover every participant")
	})

	t.Run("more winners than eligible", func(t *testing.T) {
		pool := makePool(2)
		winners, err := Draw(pool, 3)
		assert.ErrorIs(t, err, ErrInsufficientEligible)
		assert.Nil(t, winners)
	})

	t.Run("zero and negative k", func(t *testing.T) {
		_, err := Draw(makePool(4), 0)
		assert.ErrorIs(t, err, ErrInsufficientEligible)

		_, err = Draw(makePool(4), -1)
		assert.ErrorIs(t, err, ErrInsufficientEligible)
	})

	t.Run("caller's pool is not mutated", func(t *testing.T) {
		pool := makePool(6)
		_, err := Draw(pool, 6)
		require.NoError(t, err)

		for i, e := range pool {
			assert.Equal(t, uint(i+1), e.ParticipantID)
		}
	})

	t.Run("draws are independent", func(t *testing.T) {
		pool := makePool(3)

		first, err := Draw(pool, 3)
		require.NoError(t, err)
		second, err := Draw(pool, 3)
		require.NoError(t, err)

		// No persisted exclusion: the same participants are drawable again.
		assert.Len(t, first, 3)
		assert.Len(t, second, 3)
	})
}
