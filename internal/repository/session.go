package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// SessionRepository resolves session tokens issued by the auth layer.
type SessionRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	GetUser(ctx context.Context, token string) (*entity.User, error)
}

type dbSession struct {
	client *redis.Client
	users  UserRepository
}

func NewSessionRepository(client *redis.Client, users UserRepository) SessionRepository {
	return &dbSession{
		client: client,
		users:  users,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (that *dbSession) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := that.client.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *dbSession) GetUser(ctx context.Context, token string) (*entity.User, error) {
	userID, err := that.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session: %w", apperror.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	user, err := that.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session user: %w", err)
	}

	return user, nil
}
