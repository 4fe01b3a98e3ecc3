package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// UserRepository reads and updates the accounts owned by the auth layer.
// Users are stored as Redis hashes so counters can be bumped in place.
type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	IncrementStats(ctx context.Context, userID string, fields []string) error
}

type dbUser struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) UserRepository {
	return &dbUser{
		client: client,
	}
}

// maxWatchRetries bounds how often a stats update is replayed when the user
// hash changes between WATCH and EXEC.
const maxWatchRetries = 5

func userKey(id string) string {
	return "user:" + id
}

func (that *dbUser) Save(ctx context.Context, user *entity.User) error {
	if err := that.client.HSet(ctx, userKey(user.ID), user).Err(); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

func (that *dbUser) GetByID(ctx context.Context, id string) (*entity.User, error) {
	response := that.client.HGetAll(ctx, userKey(id))

	fields, err := response.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}

	var user entity.User
	if err = response.Scan(&user); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

// IncrementStats bumps every field by one in a single MULTI/EXEC guarded by
// WATCH on the user key. Missing users are reported as not found instead of
// creating a stub hash.
func (that *dbUser) IncrementStats(ctx context.Context, userID string, fields []string) error {
	key := userKey(userID)

	increment := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}

		if exists == 0 {
			return fmt.Errorf("user %s: %w", userID, apperror.ErrNotFound)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, field := range fields {
				pipe.HIncrBy(ctx, key, field, 1)
			}
			return nil
		})
		return err
	}

	var err error
	for range maxWatchRetries {
		err = that.client.Watch(ctx, increment, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to increment stats: %w", err)
	}

	return nil
}
