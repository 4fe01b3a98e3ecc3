package entity

import (
	"math/rand/v2"
)

type Status int

const (
	StatusPending  Status = -2
	StatusOngoing  Status = -1
	StatusSide0Win Status = 0
	StatusSide1Win Status = 1
	StatusDraw     Status = 2
)

// WinFor returns the terminal status awarding the game to slot.
func WinFor(slot int) Status {
	if slot == 0 {
		return StatusSide0Win
	}
	return StatusSide1Win
}

func (that Status) IsTerminal() bool {
	return that >= StatusSide0Win
}

// OutcomeFor - result of a terminal status seen from slot.
func (that Status) OutcomeFor(slot int) Outcome {
	switch that {
	case StatusDraw:
		return OutcomeDraw
	case WinFor(slot):
		return OutcomeWin
	case WinFor(1 - slot):
		return OutcomeLoss
	default:
		return OutcomeNone
	}
}

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// Point is a cell of the unbounded board.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Point) Add(other Point) Point {
	return Point{X: that.X + other.X, Y: that.Y + other.Y}
}

func (that Point) Sub(other Point) Point {
	return Point{X: that.X - other.X, Y: that.Y - other.Y}
}

// Chebyshev returns max(|dx|, |dy|) between two points.
func (that Point) Chebyshev(other Point) int {
	dx, dy := abs(that.X-other.X), abs(that.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

type LastMove struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Exists bool `json:"exists"`
}

// Game is the state of one room's board. Sides are room slots: Moves[0]
// belongs to slot 0 and Moves[1] to slot 1. XNumber is the slot that moved
// first and XTurn is true whenever that slot is to move.
type Game struct {
	Moves        [2][]Point `json:"moves"`
	Last         LastMove   `json:"last"`
	XTurn        bool       `json:"xTurn"`
	XNumber      int        `json:"xNumber"`
	Status       Status     `json:"status"`
	Disconnected bool       `json:"disconnected"`
	WinLine      []Point    `json:"winLine,omitempty"`

	stones     [2]map[Point]struct{}
	drawOffers [2]bool
}

// NewGame creates a pending game with a random first mover.
func NewGame() *Game {
	return NewGameWithFirstMover(rand.IntN(2)) //nolint: gosec // it's ok
}

func NewGameWithFirstMover(firstMover int) *Game {
	return &Game{
		Moves:   [2][]Point{{}, {}},
		XTurn:   true,
		XNumber: firstMover,
		Status:  StatusPending,
	}
}

func (that *Game) IsPending() bool {
	return that.Status == StatusPending
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status.IsTerminal()
}

// Start moves a pending game to ongoing.
func (that *Game) Start() {
	if that.IsPending() {
		that.Status = StatusOngoing
	}
}

// TurnSlot returns the slot that has to move next.
func (that *Game) TurnSlot() int {
	if that.XTurn {
		return that.XNumber
	}
	return 1 - that.XNumber
}

func (that *Game) MoveCount() int {
	return len(that.Moves[0]) + len(that.Moves[1])
}

// Place records a stone for slot. Legality is the caller's business.
func (that *Game) Place(slot int, p Point) {
	that.index()
	that.Moves[slot] = append(that.Moves[slot], p)
	that.stones[slot][p] = struct{}{}
	that.Last = LastMove{X: p.X, Y: p.Y, Exists: true}
	that.drawOffers = [2]bool{}
}

func (that *Game) PassTurn() {
	that.XTurn = !that.XTurn
}

// IsOccupied reports whether either side holds p.
func (that *Game) IsOccupied(p Point) bool {
	that.index()
	_, own := that.stones[0][p]
	_, other := that.stones[1][p]
	return own || other
}

// Stones returns the coordinate set of slot. It must not be modified.
func (that *Game) Stones(slot int) map[Point]struct{} {
	that.index()
	return that.stones[slot]
}

// Finish sets a terminal status. It is a no-op unless the game is ongoing.
func (that *Game) Finish(status Status, line []Point) bool {
	if !that.IsOngoing() || !status.IsTerminal() {
		return false
	}

	that.Status = status
	that.WinLine = line

	return true
}

// Disconnect awards the game to the opponent of slot.
func (that *Game) Disconnect(slot int) bool {
	if !that.Finish(WinFor(1-slot), nil) {
		return false
	}

	that.Disconnected = true

	return true
}

// Resign awards the game to the opponent of slot.
func (that *Game) Resign(slot int) bool {
	return that.Finish(WinFor(1-slot), nil)
}

// OfferDraw registers a draw offer from slot and reports whether both sides
// now agree, in which case the game is drawn.
func (that *Game) OfferDraw(slot int) bool {
	if !that.IsOngoing() {
		return false
	}

	that.drawOffers[slot] = true
	if that.drawOffers[0] && that.drawOffers[1] {
		return that.Finish(StatusDraw, nil)
	}

	return false
}

// Clone returns a deep copy safe to hand to other goroutines.
func (that *Game) Clone() *Game {
	clone := &Game{
		Last:         that.Last,
		XTurn:        that.XTurn,
		XNumber:      that.XNumber,
		Status:       that.Status,
		Disconnected: that.Disconnected,
	}

	for slot := range that.Moves {
		clone.Moves[slot] = append([]Point{}, that.Moves[slot]...)
	}

	if that.WinLine != nil {
		clone.WinLine = append([]Point{}, that.WinLine...)
	}

	return clone
}

// index builds the coordinate sets lazily, e.g. after json decoding.
func (that *Game) index() {
	if that.stones[0] != nil {
		return
	}

	for slot := range that.Moves {
		that.stones[slot] = make(map[Point]struct{}, len(that.Moves[slot]))
		for _, p := range that.Moves[slot] {
			that.stones[slot][p] = struct{}{}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
