package usecase

import (
	"container/list"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// matchQueue is a FIFO of waiting players with O(1) removal by connection.
// It is not safe for concurrent use; GameManager guards it.
type matchQueue struct {
	order *list.List
	index map[string]*list.Element
}

func newMatchQueue() *matchQueue {
	return &matchQueue{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// Push appends player unless it is already waiting.
func (that *matchQueue) Push(player entity.Player) bool {
	if that.Contains(player.ID) {
		return false
	}

	that.index[player.ID] = that.order.PushBack(player)

	return true
}

// Pop removes and returns the longest waiting player.
func (that *matchQueue) Pop() (entity.Player, bool) {
	front := that.order.Front()
	if front == nil {
		return entity.Player{}, false
	}

	player, _ := that.order.Remove(front).(entity.Player)
	delete(that.index, player.ID)

	return player, true
}

// Remove drops the ticket of connID; removing a missing ticket is a no-op.
func (that *matchQueue) Remove(connID string) bool {
	element, ok := that.index[connID]
	if !ok {
		return false
	}

	that.order.Remove(element)
	delete(that.index, connID)

	return true
}

func (that *matchQueue) Contains(connID string) bool {
	_, ok := that.index[connID]
	return ok
}

func (that *matchQueue) Len() int {
	return that.order.Len()
}
