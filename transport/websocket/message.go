package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Inbound actions.
const (
	actionCreate = "game:create"
	actionJoin   = "game:join"
	actionMove   = "game:move"
	actionResign = "game:resign"
	actionDraw   = "game:draw"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinPayload struct {
	Kind entity.RoomKind `json:"kind"`
	Code string          `json:"code,omitempty"`
}

// roomKind resolves the requested kind; a bare code means private.
func (that JoinPayload) roomKind() entity.RoomKind {
	if that.Kind != "" {
		return that.Kind
	}

	if that.Code != "" {
		return entity.KindPrivate
	}

	return entity.KindCasual
}

type MovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: body})
}
