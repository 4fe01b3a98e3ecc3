package websocket

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const guestName = "Guest"

// client is one live connection. Outbound messages go through send and are
// written by a single write pump, so they leave in enqueue order.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu   sync.Mutex
	user *entity.User

	closeOnce sync.Once
}

func (that *client) player() entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.user == nil {
		return entity.Player{ID: that.id, Name: guestName}
	}

	return entity.Player{ID: that.id, Name: that.user.Username, UserID: that.user.ID}
}

func (that *client) setUser(user *entity.User) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.user = user
}

func (that *client) closeSend() {
	that.closeOnce.Do(func() {
		close(that.send)
	})
}

// Hub is the connection registry. It delivers game events to connections
// by id and never blocks the caller: a client whose buffer is full is
// dropped.
type Hub struct {
	logger     *slog.Logger
	sendBuffer int

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger, sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}

	return &Hub{
		logger:     logger.With("component", "hub"),
		sendBuffer: sendBuffer,
		clients:    make(map[string]*client),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

// unregister removes c and closes its send channel. It reports whether c
// was still registered.
func (that *Hub) unregister(c *client) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.clients[c.id]
	if !ok || current != c {
		return false
	}

	delete(that.clients, c.id)
	c.closeSend()

	return true
}

// Notify sends an event to the connection; unknown connections are skipped.
func (that *Hub) Notify(connID, action string, payload any) {
	log := that.logger.With("method", "Notify", "connID", connID, "action", action)

	message, err := encodeMessage(action, payload)
	if err != nil {
		log.Error("failed to marshal message", "error", err)
		return
	}

	that.mu.RLock()
	c, ok := that.clients[connID]
	if !ok {
		that.mu.RUnlock()
		return
	}

	select {
	case c.send <- message:
		that.mu.RUnlock()
		return
	default:
	}
	that.mu.RUnlock()

	log.Warn("send buffer is full, dropping client")
	that.unregister(c)
}

// AttachUser refreshes the identity of a live connection and pushes it to
// the client.
func (that *Hub) AttachUser(connID string, user *entity.User) {
	that.mu.RLock()
	c, ok := that.clients[connID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	c.setUser(user)
	that.Notify(connID, usecase.EventUser, user)
}

// Connected returns the number of registered connections.
func (that *Hub) Connected() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Close drops every connection.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, c := range that.clients {
		c.closeSend()
		delete(that.clients, id)
	}
}
