package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// MatchRepository is the append-only history of finished games. The Redis
// store also keeps matches:user:<id>, newest first, for the history readers.
type MatchRepository interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

func matchKey(id string) string {
	return "match:" + id
}

func userMatchesKey(userID string) string {
	return "matches:user:" + userID
}

// Save is idempotent: saving the same record again rewrites it and keeps a
// single entry in each user list.
func (that *dbMatch) Save(ctx context.Context, record *entity.MatchRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKey(record.ID), recordJSON, 0)

		for _, player := range record.Players {
			if player.IsGuest() {
				continue
			}

			key := userMatchesKey(player.UserID)
			pipe.LRem(ctx, key, 0, record.ID)
			pipe.LPush(ctx, key, record.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	response, err := that.client.Get(ctx, matchKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("match %s: %w", id, apperror.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by ID: %w", err)
	}

	var record entity.MatchRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &record, nil
}
