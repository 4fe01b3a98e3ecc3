package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func TestMatchQueue(t *testing.T) {
	t.Run("Pops in arrival order", func(t *testing.T) {
		// Given: three queued players
		queue := newMatchQueue()
		for _, id := range []string{"A", "B", "C"} {
			require.True(t, queue.Push(entity.Player{ID: id}))
		}

		// When: popping all of them
		var order []string
		for {
			player, ok := queue.Pop()
			if !ok {
				break
			}
			order = append(order, player.ID)
		}

		// Then: the longest waiting player comes first
		assert.Equal(t, []string{"A", "B", "C"}, order)
		assert.Equal(t, 0, queue.Len())
	})

	t.Run("Duplicate push is refused", func(t *testing.T) {
		// Given: A already waiting
		queue := newMatchQueue()
		require.True(t, queue.Push(entity.Player{ID: "A"}))

		// When: A is pushed again
		ok := queue.Push(entity.Player{ID: "A"})

		// Then: A holds a single ticket
		assert.False(t, ok)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Removal from the middle keeps the order", func(t *testing.T) {
		// Given: three queued players
		queue := newMatchQueue()
		for _, id := range []string{"A", "B", "C"} {
			queue.Push(entity.Player{ID: id})
		}

		// When: B leaves, twice
		assert.True(t, queue.Remove("B"))
		assert.False(t, queue.Remove("B"))

		// Then: A and C remain in order
		assert.False(t, queue.Contains("B"))
		first, _ := queue.Pop()
		second, _ := queue.Pop()
		assert.Equal(t, "A", first.ID)
		assert.Equal(t, "C", second.ID)
	})
}
