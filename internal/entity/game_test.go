package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("NewGame is pending with the first mover on turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// Then: it is pending and the first mover's slot is on turn
		assert.True(t, game.IsPending())
		assert.False(t, game.IsOngoing())
		assert.False(t, game.IsFinished())
		assert.Contains(t, []int{0, 1}, game.XNumber)
		assert.Equal(t, game.XNumber, game.TurnSlot())
	})

	t.Run("Start moves pending to ongoing only once", func(t *testing.T) {
		// Given: a finished game
		game := NewGameWithFirstMover(0)
		game.Start()
		require.True(t, game.Finish(StatusSide1Win, nil))

		// When: starting it again
		game.Start()

		// Then: the status never goes backward
		assert.Equal(t, StatusSide1Win, game.Status)
	})
}

func TestGame_Finish(t *testing.T) {
	t.Run("Finish is refused unless ongoing", func(t *testing.T) {
		// Given: a pending game
		game := NewGameWithFirstMover(0)

		// When: finishing it
		ok := game.Finish(StatusSide0Win, nil)

		// Then: nothing changes
		assert.False(t, ok)
		assert.Equal(t, StatusPending, game.Status)
	})

	t.Run("Disconnect awards the opponent and sets the flag", func(t *testing.T) {
		// Given: an ongoing game
		game := NewGameWithFirstMover(1)
		game.Start()

		// When: slot 1 disconnects
		ok := game.Disconnect(1)

		// Then: slot 0 wins by disconnect
		require.True(t, ok)
		assert.Equal(t, StatusSide0Win, game.Status)
		assert.True(t, game.Disconnected)
	})

	t.Run("Resign awards the opponent", func(t *testing.T) {
		// Given: an ongoing game
		game := NewGameWithFirstMover(0)
		game.Start()

		// When: slot 0 resigns
		ok := game.Resign(0)

		// Then: slot 1 wins without the disconnect flag
		require.True(t, ok)
		assert.Equal(t, StatusSide1Win, game.Status)
		assert.False(t, game.Disconnected)
	})

	t.Run("Draw needs both offers and a move withdraws them", func(t *testing.T) {
		// Given: an ongoing game with an offer from slot 0
		game := NewGameWithFirstMover(0)
		game.Start()
		require.False(t, game.OfferDraw(0))

		// When: a stone is placed and slot 1 offers
		game.Place(0, Point{})
		drawn := game.OfferDraw(1)

		// Then: the earlier offer was cleared
		assert.False(t, drawn)
		assert.True(t, game.IsOngoing())

		// When: slot 0 offers again
		drawn = game.OfferDraw(0)

		// Then: the game is drawn
		assert.True(t, drawn)
		assert.Equal(t, StatusDraw, game.Status)
	})
}

func TestGame_CloneAndIndex(t *testing.T) {
	t.Run("Clone does not share move slices", func(t *testing.T) {
		// Given: a game with a stone
		game := NewGameWithFirstMover(0)
		game.Start()
		game.Place(0, Point{X: 1, Y: 2})

		// When: cloning and mutating the original
		clone := game.Clone()
		game.Place(1, Point{X: 2, Y: 2})

		// Then: the clone keeps the old state
		assert.Len(t, clone.Moves[0], 1)
		assert.Empty(t, clone.Moves[1])
	})

	t.Run("Occupancy is rebuilt after decoding", func(t *testing.T) {
		// Given: a game encoded to json
		game := NewGameWithFirstMover(0)
		game.Place(0, Point{X: 4, Y: 4})
		data, err := json.Marshal(game)
		require.NoError(t, err)

		// When: decoding it
		var decoded Game
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the coordinate sets are available
		assert.True(t, decoded.IsOccupied(Point{X: 4, Y: 4}))
		assert.Contains(t, decoded.Stones(0), Point{X: 4, Y: 4})
	})
}

func TestStatus_OutcomeFor(t *testing.T) {
	assert.Equal(t, OutcomeWin, StatusSide0Win.OutcomeFor(0))
	assert.Equal(t, OutcomeLoss, StatusSide0Win.OutcomeFor(1))
	assert.Equal(t, OutcomeWin, StatusSide1Win.OutcomeFor(1))
	assert.Equal(t, OutcomeDraw, StatusDraw.OutcomeFor(1))
	assert.Equal(t, OutcomeNone, StatusOngoing.OutcomeFor(0))
}

func TestStatFields(t *testing.T) {
	assert.Equal(t, []string{"randomGames", "randomWins"}, StatFields(KindCasual, OutcomeWin))
	assert.Equal(t, []string{"rankedGames", "rankedLosses"}, StatFields(KindRanked, OutcomeLoss))
	assert.Equal(t, []string{"randomGames"}, StatFields(KindCasual, OutcomeDraw))
	assert.Nil(t, StatFields(KindPrivate, OutcomeWin))
}

func TestRoom_SnapshotAndRecord(t *testing.T) {
	// Given: a started private room with two players and one stone
	room := NewRoom("ABC123", KindPrivate, NewGameWithFirstMover(1))
	room.Seat(0, Player{ID: "c1", Name: "alice", UserID: "u1"})
	room.Seat(1, Player{ID: "c2", Name: "bob"})
	room.Start()
	room.Game.Place(1, Point{})

	// When: taking a snapshot and a record
	snapshot := room.Snapshot()
	record := room.Record("m1", time.Now())

	// Then: both carry the room state
	assert.Equal(t, [2]string{"alice", "bob"}, snapshot.Usernames)
	assert.Equal(t, StatusOngoing, snapshot.Status)
	assert.Equal(t, 1, snapshot.XNumber)
	assert.False(t, snapshot.StartedAt.IsZero())
	assert.Equal(t, "ABC123", record.RoomID)
	assert.Equal(t, 1, record.FirstMover)
	assert.Equal(t, "u1", record.Players[0].UserID)
	assert.Equal(t, 1, record.Players[1].Slot)
	assert.True(t, room.IsFull())

	// Then: the snapshot is detached from later moves
	room.Game.Place(0, Point{X: 1})
	assert.Empty(t, snapshot.Moves[0])
}

func TestPoint_Chebyshev(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		expected int
	}{
		{name: "same point", from: Point{X: 2, Y: 2}, to: Point{X: 2, Y: 2}, expected: 0},
		{name: "horizontal", from: Point{}, to: Point{X: -5}, expected: 5},
		{name: "diagonal", from: Point{X: 1, Y: 1}, to: Point{X: 4, Y: -2}, expected: 3},
		{name: "larger axis wins", from: Point{}, to: Point{X: 2, Y: -6}, expected: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.Chebyshev(tt.to))
			assert.Equal(t, tt.expected, tt.to.Chebyshev(tt.from))
		})
	}
}

func TestRoomKind_IsValid(t *testing.T) {
	for _, kind := range []RoomKind{KindPrivate, KindCasual, KindRanked} {
		assert.True(t, kind.IsValid(), string(kind))
	}

	assert.False(t, RoomKind("").IsValid())
	assert.False(t, RoomKind("blitz").IsValid())
}
