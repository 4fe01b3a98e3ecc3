package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	// WinLength is the number of collinear stones that wins the game.
	WinLength = 5
	// MaxDistance bounds how far from the existing stones a move may land.
	MaxDistance = 5
)

// Origin is where the opening stone is always placed.
var Origin = entity.Point{}

// TurnResult describes an accepted move.
type TurnResult struct {
	Placed entity.Point
	// Offset is set on the opening move only: submitted minus placed.
	Offset *entity.Point
}

// MakeTurn validates and applies a move of slot at cell.
func MakeTurn(game *entity.Game, slot int, cell entity.Point) (*TurnResult, error) {
	if !game.IsOngoing() {
		return nil, apperror.ErrGameNotOngoing
	}

	if err := validateMove(game, slot, cell); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	result := &TurnResult{Placed: cell}

	// the opening move is normalized so every board is centered on the origin
	if game.MoveCount() == 0 {
		offset := cell.Sub(Origin)
		result.Placed = Origin
		result.Offset = &offset
	}

	game.Place(slot, result.Placed)
	updateGameStatus(game, slot, result.Placed)

	return result, nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, slot int, cell entity.Point) error {
	if game.TurnSlot() != slot {
		return apperror.ErrNotYourTurn
	}

	if game.MoveCount() == 0 {
		return nil
	}

	if game.IsOccupied(cell) {
		return apperror.ErrCellOccupied
	}

	if !withinReach(game, cell) {
		return apperror.ErrTooFar
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, slot int, last entity.Point) {
	if won, line := CheckWin(game.Stones(slot), last); won {
		game.Finish(entity.WinFor(slot), line)
		return
	}

	game.PassTurn()
}

// withinReach reports whether some stone lies within MaxDistance of cell.
func withinReach(game *entity.Game, cell entity.Point) bool {
	for slot := range game.Moves {
		for _, stone := range game.Moves[slot] {
			if stone.Chebyshev(cell) <= MaxDistance {
				return true
			}
		}
	}

	return false
}
