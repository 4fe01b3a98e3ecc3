package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const maxCodeAttempts = 16

type notifier interface {
	Notify(connID, action string, payload any)
}

type matchFinalizer interface {
	Finalize(record *entity.MatchRecord)
}

// room guards one entity.Room. Every event addressed to the room runs under
// mu; retired is set once the room reached a terminal state or was discarded.
type room struct {
	*entity.Room

	mu      sync.Mutex
	retired bool
}

func (that *room) slotOf(connID string) int {
	for slot, seat := range that.Seats {
		if seat != nil && seat.ID == connID {
			return slot
		}
	}
	return -1
}

// GameManager is the room registry: it binds connections to rooms, runs the
// matchmaking queues and retires finished rooms.
//
// Lock order is manager mu, then room mu. Code holding a room lock never
// takes the manager lock.
type GameManager struct {
	logger    *slog.Logger
	notifier  notifier
	finalizer matchFinalizer

	// generateCode is swapped in tests to force collisions.
	generateCode func() (string, error)

	mu       sync.Mutex
	rooms    map[string]*room
	bindings map[string]*room
	queues   map[entity.RoomKind]*matchQueue
}

func NewGameManager(logger *slog.Logger, notifier notifier, finalizer matchFinalizer) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "gameManager"),
		notifier:  notifier,
		finalizer: finalizer,

		generateCode: pkg.GenerateRoomCode,

		rooms:    make(map[string]*room),
		bindings: make(map[string]*room),
		queues: map[entity.RoomKind]*matchQueue{
			entity.KindCasual: newMatchQueue(),
			entity.KindRanked: newMatchQueue(),
		},
	}
}

// CreatePrivateRoom opens a pending invite room with player in slot 0 and
// returns its code.
func (that *GameManager) CreatePrivateRoom(player entity.Player) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.isBusyLocked(player.ID) {
		return "", apperror.ErrAlreadyInRoom
	}

	code, err := that.allocateCodeLocked()
	if err != nil {
		return "", fmt.Errorf("failed to allocate room code: %w", err)
	}

	r := &room{Room: entity.NewRoom(code, entity.KindPrivate, entity.NewGame())}
	r.Seat(0, player)

	that.rooms[code] = r
	that.bindings[player.ID] = r

	that.notifier.Notify(player.ID, EventPreInit, PreInitPayload{Code: code})
	that.logger.Info("private room created", "roomID", code, "connID", player.ID)

	return code, nil
}

// JoinPrivateRoom binds player to slot 1 of the room with code and starts
// the game.
func (that *GameManager) JoinPrivateRoom(player entity.Player, code string) (*entity.Snapshot, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.isBusyLocked(player.ID) {
		return nil, apperror.ErrAlreadyInRoom
	}

	r, ok := that.rooms[code]
	if !ok || r.Kind != entity.KindPrivate {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownCode, code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.retired {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownCode, code)
	}

	if r.IsFull() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomFull, code)
	}

	r.Seat(1, player)
	r.Start()
	that.bindings[player.ID] = r

	snapshot := r.Snapshot()
	that.broadcastLocked(r, EventInit, snapshot)
	that.logger.Info("player joined private room", "roomID", code, "connID", player.ID)

	return snapshot, nil
}

// JoinRandom pairs player with the longest waiting player of the queue for
// kind, or queues player when nobody waits. A nil snapshot means queued.
func (that *GameManager) JoinRandom(player entity.Player, kind entity.RoomKind) (*entity.Snapshot, error) {
	if kind == entity.KindRanked && player.IsGuest() {
		return nil, apperror.ErrAuthRequired
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	queue, ok := that.queues[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownKind, kind)
	}

	if queue.Contains(player.ID) {
		that.notifier.Notify(player.ID, EventPreInit, PreInitPayload{})
		return nil, nil
	}

	if that.isBusyLocked(player.ID) {
		return nil, apperror.ErrAlreadyInRoom
	}

	opponent, ok := queue.Pop()
	if !ok {
		queue.Push(player)
		that.notifier.Notify(player.ID, EventPreInit, PreInitPayload{})
		that.logger.Info("player queued", "connID", player.ID, "kind", kind)

		return nil, nil
	}

	r := &room{Room: entity.NewRoom(pkg.GenerateRoomID(), kind, entity.NewGame())}
	r.Seat(0, opponent)
	r.Seat(1, player)
	r.Start()

	that.rooms[r.ID] = r
	that.bindings[opponent.ID] = r
	that.bindings[player.ID] = r

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.Snapshot()
	that.broadcastLocked(r, EventInit, snapshot)
	that.logger.Info("players paired", "roomID", r.ID, "kind", kind, "firstMover", r.Game.XNumber)

	return snapshot, nil
}

// MakeTurn applies a move of the connection's slot. Moves on rooms that are
// not ongoing fail with apperror.ErrGameNotOngoing, which callers ignore.
func (that *GameManager) MakeTurn(connID string, cell entity.Point) error {
	return that.withRoom(connID, func(r *room, slot int) error {
		result, err := gomoku.MakeTurn(r.Game, slot, cell)
		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if result.Offset != nil {
			that.notifier.Notify(connID, EventFirstMoveOffset, *result.Offset)
		}

		that.broadcastLocked(r, EventGameState, r.Snapshot())

		return nil
	})
}

// Resign ends the game in favor of the opponent.
func (that *GameManager) Resign(connID string) error {
	return that.withRoom(connID, func(r *room, slot int) error {
		if !r.Game.Resign(slot) {
			return apperror.ErrGameNotOngoing
		}

		that.broadcastLocked(r, EventGameState, r.Snapshot())

		return nil
	})
}

// OfferDraw records a draw offer; the game is drawn once both slots offered.
func (that *GameManager) OfferDraw(connID string) error {
	return that.withRoom(connID, func(r *room, slot int) error {
		if !r.Game.IsOngoing() {
			return apperror.ErrGameNotOngoing
		}

		if r.Game.OfferDraw(slot) {
			that.broadcastLocked(r, EventGameState, r.Snapshot())
			return nil
		}

		if opponent := r.Seats[1-slot]; opponent != nil {
			that.notifier.Notify(opponent.ID, EventDrawOffer, DrawOfferPayload{Slot: slot})
		}

		return nil
	})
}

// Release handles a closed connection: it leaves the matchmaking queue,
// discards a pending room, or forfeits an ongoing game to the opponent.
func (that *GameManager) Release(connID string) {
	log := that.logger.With("method", "Release", "connID", connID)

	that.mu.Lock()
	defer that.mu.Unlock()

	for kind, queue := range that.queues {
		if queue.Remove(connID) {
			log.Info("player left queue", "kind", kind)
			return
		}
	}

	r, ok := that.bindings[connID]
	if !ok {
		return
	}
	delete(that.bindings, connID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.retired {
		return
	}

	if r.Game.IsPending() {
		r.retired = true
		that.unbindLocked(r)
		log.Info("pending room discarded", "roomID", r.ID)

		return
	}

	slot := r.slotOf(connID)
	if slot < 0 || !r.Game.Disconnect(slot) {
		log.Warn("disconnect on a room that is not ongoing", "roomID", r.ID)
		return
	}

	r.retired = true
	if opponent := r.Seats[1-slot]; opponent != nil {
		that.notifier.Notify(opponent.ID, EventGameState, r.Snapshot())
	}

	that.unbindLocked(r)
	that.finalizer.Finalize(r.Record(pkg.GenerateMatchID(), time.Now()))

	log.Info("player disconnected from ongoing game", "roomID", r.ID, "status", r.Game.Status)
}

// ActiveRooms returns the number of rooms in the registry.
func (that *GameManager) ActiveRooms() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

// Waiting returns the number of queued players for kind.
func (that *GameManager) Waiting(kind entity.RoomKind) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	if queue, ok := that.queues[kind]; ok {
		return queue.Len()
	}
	return 0
}

// withRoom runs fn under the lock of the connection's room. When fn leaves
// the game terminal the room is retired, unbound and finalized.
func (that *GameManager) withRoom(connID string, fn func(r *room, slot int) error) error {
	that.mu.Lock()
	r, ok := that.bindings[connID]
	that.mu.Unlock()

	if !ok {
		return apperror.ErrNotInRoom
	}

	r.mu.Lock()

	if r.retired {
		r.mu.Unlock()
		return apperror.ErrGameNotOngoing
	}

	slot := r.slotOf(connID)
	if slot < 0 {
		r.mu.Unlock()
		return apperror.ErrNotInRoom
	}

	err := fn(r, slot)

	var record *entity.MatchRecord
	if err == nil && r.Game.IsFinished() {
		r.retired = true
		record = r.Record(pkg.GenerateMatchID(), time.Now())
	}

	r.mu.Unlock()

	if record == nil {
		return err
	}

	that.mu.Lock()
	that.unbindLocked(r)
	that.mu.Unlock()

	that.logger.Info("game finished", "roomID", r.ID, "status", record.Status)
	that.finalizer.Finalize(record)

	return nil
}

func (that *GameManager) broadcastLocked(r *room, action string, payload any) {
	for _, seat := range r.Seats {
		if seat != nil {
			that.notifier.Notify(seat.ID, action, payload)
		}
	}
}

// unbindLocked removes the room and the bindings still pointing at it.
func (that *GameManager) unbindLocked(r *room) {
	if current, ok := that.rooms[r.ID]; ok && current == r {
		delete(that.rooms, r.ID)
	}

	for _, seat := range r.Seats {
		if seat == nil {
			continue
		}
		if bound, ok := that.bindings[seat.ID]; ok && bound == r {
			delete(that.bindings, seat.ID)
		}
	}
}

func (that *GameManager) isBusyLocked(connID string) bool {
	if _, ok := that.bindings[connID]; ok {
		return true
	}

	for _, queue := range that.queues {
		if queue.Contains(connID) {
			return true
		}
	}

	return false
}

func (that *GameManager) allocateCodeLocked() (string, error) {
	for range maxCodeAttempts {
		code, err := that.generateCode()
		if err != nil {
			return "", err
		}

		if _, taken := that.rooms[code]; !taken {
			return code, nil
		}
	}

	return "", apperror.ErrCodeSpaceExhausted
}

// IsSilent reports whether err must not be answered to the client: events
// addressed to a retired room, or arriving after the room was unbound.
func IsSilent(err error) bool {
	return errors.Is(err, apperror.ErrGameNotOngoing) || errors.Is(err, apperror.ErrNotInRoom)
}
