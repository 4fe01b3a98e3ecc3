package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

func TestSessionRepository_GetUser(t *testing.T) {
	t.Run("GetUser_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		userRepo := NewUserRepository(st.Storage)
		sessionRepo := NewSessionRepository(st.Storage, userRepo)

		// Given: a user with a live session
		user := &entity.User{ID: "u1", Username: "alice"}
		require.NoError(t, userRepo.Save(ctx, user))
		require.NoError(t, sessionRepo.Save(ctx, "token", user.ID, time.Minute))

		// When: the token is resolved
		retrieved, err := sessionRepo.GetUser(ctx, "token")

		// Then: the session owner is returned
		require.NoError(t, err)
		assert.Equal(t, user, retrieved)
	})

	t.Run("GetUser_UnknownToken", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, NewUserRepository(st.Storage))

		// When: an unknown token is resolved
		_, err := sessionRepo.GetUser(ctx, "nope")

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("GetUser_DeletedUser", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, NewUserRepository(st.Storage))

		// Given: a session pointing at a user that no longer exists
		require.NoError(t, sessionRepo.Save(ctx, "token", "gone", time.Minute))

		// When: the token is resolved
		_, err := sessionRepo.GetUser(ctx, "token")

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
