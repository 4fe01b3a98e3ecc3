package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type stubSessions struct {
	users map[string]*entity.User
}

func (that *stubSessions) GetUser(_ context.Context, token string) (*entity.User, error) {
	user, ok := that.users[token]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

type recordingFinalizer struct {
	mu      sync.Mutex
	records []*entity.MatchRecord
}

func (that *recordingFinalizer) Finalize(record *entity.MatchRecord) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.records = append(that.records, record)
}

type testEnv struct {
	url       string
	hub       *Hub
	manager   *usecase.GameManager
	finalizer *recordingFinalizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sessions := &stubSessions{users: map[string]*entity.User{
		"alice-token": {ID: "u1", Username: "alice"},
	}}

	hub := NewHub(logger, 16)
	finalizer := &recordingFinalizer{}
	manager := usecase.NewGameManager(logger, hub, finalizer)
	server := New(logger, hub, manager, sessions, nil)

	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		hub.Close()
		httpServer.Close()
	})

	return &testEnv{
		url:       "ws" + strings.TrimPrefix(httpServer.URL, "http"),
		hub:       hub,
		manager:   manager,
		finalizer: finalizer,
	}
}

func (that *testEnv) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()

	header := http.Header{}
	if token != "" {
		header.Set("Cookie", sessionCookie+"="+token)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(that.url, header)
	require.NoError(t, err)
	defer resp.Body.Close()

	t.Cleanup(func() { conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	message := map[string]any{"action": action}
	if payload != nil {
		message["payload"] = payload
	}

	require.NoError(t, conn.WriteJSON(message))
}

func expect(t *testing.T, conn *websocket.Conn, action string, out any) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))
	require.Equal(t, action, message.Action, "payload: %s", message.Payload)

	if out != nil {
		require.NoError(t, json.Unmarshal(message.Payload, out))
	}
}

// startPrivateGame connects two guests through an invite code and returns
// them as first mover, second mover.
func startPrivateGame(t *testing.T, env *testEnv) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	alice := env.dial(t, "")
	bob := env.dial(t, "")

	send(t, alice, actionCreate, nil)
	var created usecase.PreInitPayload
	expect(t, alice, usecase.EventPreInit, &created)
	require.Len(t, created.Code, 6)

	send(t, bob, actionJoin, JoinPayload{Kind: entity.KindPrivate, Code: strings.ToLower(created.Code)})

	var snapshot entity.Snapshot
	expect(t, alice, usecase.EventInit, &snapshot)
	expect(t, bob, usecase.EventInit, nil)
	require.Equal(t, entity.StatusOngoing, snapshot.Status)

	if snapshot.XNumber == 0 {
		return alice, bob
	}
	return bob, alice
}

func TestServer_PrivateGame(t *testing.T) {
	t.Run("Moves are broadcast and rejected moves are answered", func(t *testing.T) {
		// Given: an ongoing private game
		env := newTestEnv(t)
		first, second := startPrivateGame(t, env)

		// When: the first mover plays away from the origin
		send(t, first, actionMove, MovePayload{X: 4, Y: -2})

		// Then: the mover learns the offset and both see the state
		var offset entity.Point
		expect(t, first, usecase.EventFirstMoveOffset, &offset)
		assert.Equal(t, entity.Point{X: 4, Y: -2}, offset)

		var state entity.Snapshot
		expect(t, first, usecase.EventGameState, &state)
		expect(t, second, usecase.EventGameState, nil)
		assert.Equal(t, []entity.Point{{X: 0, Y: 0}}, state.Moves[state.XNumber])

		// When: the first mover plays again out of turn
		send(t, first, actionMove, MovePayload{X: 1, Y: 0})

		// Then: only the mover is told why
		var rejected usecase.ErrorPayload
		expect(t, first, usecase.EventInvalidMove, &rejected)
		assert.Equal(t, "notYourTurn", rejected.Reason)

		// When: the second mover plays too far away
		send(t, second, actionMove, MovePayload{X: 20, Y: 0})

		// Then: the move is rejected
		expect(t, second, usecase.EventInvalidMove, &rejected)
		assert.Equal(t, "tooFar", rejected.Reason)
	})

	t.Run("Unknown code is answered with joinError", func(t *testing.T) {
		// Given: a connected guest
		env := newTestEnv(t)
		conn := env.dial(t, "")

		// When: joining a code nobody created
		send(t, conn, actionJoin, JoinPayload{Code: "QQQQQQ"})

		// Then: the join is refused
		var rejected usecase.ErrorPayload
		expect(t, conn, usecase.EventJoinError, &rejected)
		assert.Equal(t, "unknownCode", rejected.Reason)
	})

	t.Run("Malformed frames keep the connection open", func(t *testing.T) {
		// Given: a connected guest
		env := newTestEnv(t)
		conn := env.dial(t, "")

		// When: garbage and an unknown action are sent, then a valid request
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		send(t, conn, "game:teleport", nil)
		send(t, conn, actionCreate, nil)

		// Then: the valid request is still served
		expect(t, conn, usecase.EventPreInit, nil)
	})

	t.Run("Disconnect awards the game to the remaining player", func(t *testing.T) {
		// Given: an ongoing private game
		env := newTestEnv(t)
		first, second := startPrivateGame(t, env)

		// When: the second mover drops
		require.NoError(t, second.Close())

		// Then: the first mover gets the final state
		var state entity.Snapshot
		expect(t, first, usecase.EventGameState, &state)
		assert.True(t, state.Disconnected)
		assert.Equal(t, entity.WinFor(state.XNumber), state.Status)

		assert.Eventually(t, func() bool {
			env.finalizer.mu.Lock()
			defer env.finalizer.mu.Unlock()

			return env.manager.ActiveRooms() == 0 && len(env.finalizer.records) == 1
		}, 5*time.Second, 10*time.Millisecond)
	})
}

func TestServer_RandomAndRanked(t *testing.T) {
	t.Run("Guests cannot queue for ranked", func(t *testing.T) {
		// Given: a guest
		env := newTestEnv(t)
		conn := env.dial(t, "")

		// When: the guest asks for ranked
		send(t, conn, actionJoin, JoinPayload{Kind: entity.KindRanked})

		// Then: authentication is required
		var rejected usecase.ErrorPayload
		expect(t, conn, usecase.EventJoinError, &rejected)
		assert.Equal(t, "authRequired", rejected.Reason)
	})

	t.Run("Unknown kind is answered with joinError", func(t *testing.T) {
		// Given: a connected guest
		env := newTestEnv(t)
		conn := env.dial(t, "")

		// When: asking for a kind that does not exist
		send(t, conn, actionJoin, JoinPayload{Kind: "blitz"})

		// Then: the join is refused and nobody is queued
		var rejected usecase.ErrorPayload
		expect(t, conn, usecase.EventJoinError, &rejected)
		assert.Equal(t, "unknownKind", rejected.Reason)
		assert.Equal(t, 0, env.manager.Waiting(entity.KindCasual))
	})

	t.Run("Authenticated connections receive their user and may queue", func(t *testing.T) {
		// Given: a connection with a valid session cookie
		env := newTestEnv(t)
		conn := env.dial(t, "alice-token")

		// Then: the identity is pushed first
		var user entity.User
		expect(t, conn, usecase.EventUser, &user)
		assert.Equal(t, "alice", user.Username)

		// When: queueing for ranked
		send(t, conn, actionJoin, JoinPayload{Kind: entity.KindRanked})

		// Then: the request is acknowledged without a code
		var ack usecase.PreInitPayload
		expect(t, conn, usecase.EventPreInit, &ack)
		assert.Empty(t, ack.Code)
		assert.Equal(t, 1, env.manager.Waiting(entity.KindRanked))
	})

	t.Run("Two random joins are paired", func(t *testing.T) {
		// Given: two guests
		env := newTestEnv(t)
		alice := env.dial(t, "")
		bob := env.dial(t, "")

		// When: both ask for a random game
		send(t, alice, actionJoin, JoinPayload{Kind: entity.KindCasual})
		expect(t, alice, usecase.EventPreInit, nil)
		send(t, bob, actionJoin, nil)

		// Then: both receive init for the same room
		var fromAlice, fromBob entity.Snapshot
		expect(t, alice, usecase.EventInit, &fromAlice)
		expect(t, bob, usecase.EventInit, &fromBob)
		assert.Equal(t, fromAlice, fromBob)
		assert.Equal(t, [2]string{guestName, guestName}, fromAlice.Usernames)
	})
}

func TestHub_AttachUser(t *testing.T) {
	// Given: a connected guest
	env := newTestEnv(t)
	conn := env.dial(t, "")

	require.Eventually(t, func() bool {
		return env.hub.Connected() == 1
	}, 5*time.Second, 10*time.Millisecond)

	var connID string
	env.hub.mu.RLock()
	for id := range env.hub.clients {
		connID = id
	}
	env.hub.mu.RUnlock()

	// When: a refreshed user is attached to the connection
	env.hub.AttachUser(connID, &entity.User{ID: "u9", Username: "neo", RandomWins: 4})

	// Then: the client receives it
	var user entity.User
	expect(t, conn, usecase.EventUser, &user)
	assert.Equal(t, 4, user.RandomWins)

	// Then: unknown connections are ignored
	env.hub.AttachUser("gone", &entity.User{ID: "u9"})
}
