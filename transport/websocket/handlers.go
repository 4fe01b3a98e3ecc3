package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

// dispatch decodes one inbound frame and runs its handler. Malformed frames
// and unknown actions are logged and dropped; the connection stays open.
func (that *Server) dispatch(ctx context.Context, c *client, data []byte) {
	log := that.logger.With("method", "dispatch", "connID", c.id)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		return
	}

	if err := handler(ctx, c, &message); err != nil {
		log.Error("error processing message", "action", message.Action, "error", err)
	}
}

func (that *Server) handleCreate(_ context.Context, c *client, _ *Message) error {
	if _, err := that.uGame.CreatePrivateRoom(c.player()); err != nil {
		that.replyError(c, usecase.EventJoinError, err)
		if apperror.IsClientError(err) {
			return nil
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (that *Server) handleJoin(_ context.Context, c *client, msg *Message) error {
	var payload JoinPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var err error

	kind := payload.roomKind()

	switch {
	case !kind.IsValid():
		err = fmt.Errorf("%w: %q", apperror.ErrUnknownKind, kind)
	case kind == entity.KindPrivate:
		_, err = that.uGame.JoinPrivateRoom(c.player(), payload.Code)
	default:
		_, err = that.uGame.JoinRandom(c.player(), kind)
	}

	if err != nil {
		that.replyError(c, usecase.EventJoinError, err)
		if apperror.IsClientError(err) {
			return nil
		}
		return fmt.Errorf("failed to join room: %w", err)
	}

	return nil
}

func (that *Server) handleMove(_ context.Context, c *client, msg *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.gameAction(c, func() error {
		return that.uGame.MakeTurn(c.id, entity.Point{X: payload.X, Y: payload.Y})
	})
}

func (that *Server) handleResign(_ context.Context, c *client, _ *Message) error {
	return that.gameAction(c, func() error {
		return that.uGame.Resign(c.id)
	})
}

func (that *Server) handleDraw(_ context.Context, c *client, _ *Message) error {
	return that.gameAction(c, func() error {
		return that.uGame.OfferDraw(c.id)
	})
}

// gameAction runs an in-game action. Actions on finished or missing rooms
// are ignored; other rejections are answered with invalidMove.
func (that *Server) gameAction(c *client, action func() error) error {
	err := action()
	if err == nil || usecase.IsSilent(err) {
		return nil
	}

	that.replyError(c, usecase.EventInvalidMove, err)

	if apperror.IsClientError(err) {
		return nil
	}

	return err
}

func (that *Server) replyError(c *client, action string, err error) {
	that.hub.Notify(c.id, action, usecase.ErrorPayload{Reason: apperror.Reason(err)})
}
