package entity

import "time"

type RoomKind string

const (
	KindPrivate RoomKind = "private"
	KindCasual  RoomKind = "random"
	KindRanked  RoomKind = "ranked"
)

// IsRated reports whether games of this kind update player statistics.
func (that RoomKind) IsRated() bool {
	return that == KindCasual || that == KindRanked
}

func (that RoomKind) IsValid() bool {
	switch that {
	case KindPrivate, KindCasual, KindRanked:
		return true
	default:
		return false
	}
}

// Room is an active two-slot session. Private rooms are keyed by their
// invite code, anonymous rooms by an opaque id.
type Room struct {
	ID        string
	Kind      RoomKind
	Seats     [2]*Player
	CreatedAt time.Time
	StartedAt time.Time
	Game      *Game
}

func NewRoom(id string, kind RoomKind, game *Game) *Room {
	return &Room{
		ID:        id,
		Kind:      kind,
		CreatedAt: time.Now(),
		Game:      game,
	}
}

// Seat binds player to slot.
func (that *Room) Seat(slot int, player Player) {
	player.Slot = slot
	that.Seats[slot] = &player
}

func (that *Room) IsFull() bool {
	return that.Seats[0] != nil && that.Seats[1] != nil
}

// Start binds the start time and moves the game to ongoing.
func (that *Room) Start() {
	that.StartedAt = time.Now()
	that.Game.Start()
}

// Members returns the bound players in slot order.
func (that *Room) Members() []Player {
	members := make([]Player, 0, len(that.Seats))
	for _, seat := range that.Seats {
		if seat != nil {
			members = append(members, *seat)
		}
	}
	return members
}

func (that *Room) Usernames() [2]string {
	var names [2]string
	for slot, seat := range that.Seats {
		if seat != nil {
			names[slot] = seat.Name
		}
	}
	return names
}

// Snapshot is the client-visible state of a room.
type Snapshot struct {
	Moves        [2][]Point `json:"moves"`
	Last         LastMove   `json:"last"`
	XTurn        bool       `json:"xTurn"`
	XNumber      int        `json:"xNumber"`
	Status       Status     `json:"status"`
	Usernames    [2]string  `json:"usernames"`
	StartedAt    time.Time  `json:"startedAt"`
	Disconnected bool       `json:"disconnected"`
	WinLine      []Point    `json:"winLine,omitempty"`
	Kind         RoomKind   `json:"kind"`
}

// Snapshot copies the current state; later mutations do not leak into it.
func (that *Room) Snapshot() *Snapshot {
	game := that.Game.Clone()

	return &Snapshot{
		Moves:        game.Moves,
		Last:         game.Last,
		XTurn:        game.XTurn,
		XNumber:      game.XNumber,
		Status:       game.Status,
		Usernames:    that.Usernames(),
		StartedAt:    that.StartedAt,
		Disconnected: game.Disconnected,
		WinLine:      game.WinLine,
		Kind:         that.Kind,
	}
}

// Record builds the immutable history entry of a finished room.
func (that *Room) Record(id string, finishedAt time.Time) *MatchRecord {
	game := that.Game.Clone()

	record := &MatchRecord{
		ID:           id,
		RoomID:       that.ID,
		Kind:         that.Kind,
		Moves:        game.Moves,
		FirstMover:   game.XNumber,
		Status:       game.Status,
		Disconnected: game.Disconnected,
		WinLine:      game.WinLine,
		StartedAt:    that.StartedAt,
		FinishedAt:   finishedAt,
	}

	for slot, seat := range that.Seats {
		if seat != nil {
			record.Players[slot] = *seat
		}
	}

	return record
}
