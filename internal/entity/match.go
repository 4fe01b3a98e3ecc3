package entity

import "time"

// MatchRecord is the append-only history entry of a finished game.
type MatchRecord struct {
	ID           string     `json:"id"`
	RoomID       string     `json:"roomId"`
	Kind         RoomKind   `json:"kind"`
	Moves        [2][]Point `json:"moves"`
	FirstMover   int        `json:"firstMover"`
	Status       Status     `json:"status"`
	Disconnected bool       `json:"disconnected"`
	WinLine      []Point    `json:"winLine,omitempty"`
	Players      [2]Player  `json:"players"`
	StartedAt    time.Time  `json:"startedAt"`
	FinishedAt   time.Time  `json:"finishedAt"`
}
