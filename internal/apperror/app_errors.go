package apperror

import "errors"

var (
	ErrGameNotOngoing = errors.New("game is not ongoing")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrTooFar         = errors.New("cell is too far from other stones")

	ErrUnknownCode        = errors.New("unknown room code")
	ErrRoomFull           = errors.New("room is full")
	ErrUnknownKind        = errors.New("unknown room kind")
	ErrAlreadyInRoom      = errors.New("player is already in a room")
	ErrAuthRequired       = errors.New("authentication required")
	ErrNotInRoom          = errors.New("player is not in a room")
	ErrCodeSpaceExhausted = errors.New("could not allocate a free room code")

	ErrNotFound = errors.New("not found")
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrNotYourTurn, "notYourTurn"},
	{ErrCellOccupied, "occupied"},
	{ErrTooFar, "tooFar"},
	{ErrUnknownCode, "unknownCode"},
	{ErrRoomFull, "roomFull"},
	{ErrUnknownKind, "unknownKind"},
	{ErrAlreadyInRoom, "alreadyInRoom"},
	{ErrAuthRequired, "authRequired"},
	{ErrNotInRoom, "notInRoom"},
}

const ReasonInternal = "internal"

// Reason maps a client-input error to its wire reason. Errors that are not
// client-input errors map to "internal".
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonInternal
}

// IsClientError reports whether err was caused by client input.
func IsClientError(err error) bool {
	return Reason(err) != ReasonInternal
}
