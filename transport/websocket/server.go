package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const sessionCookie = "user_session"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
)

type uGame interface {
	CreatePrivateRoom(player entity.Player) (string, error)
	JoinPrivateRoom(player entity.Player, code string) (*entity.Snapshot, error)
	JoinRandom(player entity.Player, kind entity.RoomKind) (*entity.Snapshot, error)

	MakeTurn(connID string, cell entity.Point) error
	Resign(connID string) error
	OfferDraw(connID string) error

	Release(connID string)
}

type sessionRepo interface {
	GetUser(ctx context.Context, token string) (*entity.User, error)
}

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	uGame    uGame
	sessions sessionRepo

	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, c *client, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, uGame uGame, sessions sessionRepo, allowedOrigins []string) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		hub:      hub,
		uGame:    uGame,
		sessions: sessions,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},

		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[actionCreate] = server.handleCreate
	server.handlers[actionJoin] = server.handleJoin
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionResign] = server.handleResign
	server.handlers[actionDraw] = server.handleDraw

	return server
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}

		return slices.Contains(allowed, r.Header.Get("Origin"))
	}
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}

		that.hub.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the request and runs the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	user := that.resolveUser(req)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   pkg.GenerateConnectionID(),
		conn: conn,
		send: make(chan []byte, that.hub.sendBuffer),
		user: user,
	}

	that.hub.register(c)
	log.Info("WebSocket connection established", "connID", c.id, "guest", user == nil)

	if user != nil {
		that.hub.Notify(c.id, usecase.EventUser, user)
	}

	go that.writePump(c)
	that.readPump(req.Context(), c)
}

// resolveUser returns the account behind the session cookie, or nil for
// guests.
func (that *Server) resolveUser(req *http.Request) *entity.User {
	log := that.logger.With("method", "resolveUser")

	cookie, err := req.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	user, err := that.sessions.GetUser(req.Context(), cookie.Value)
	if errors.Is(err, apperror.ErrNotFound) {
		log.Info("session not found, connecting as guest")
		return nil
	}

	if err != nil {
		log.Warn("failed to resolve session, connecting as guest", "error", err)
		return nil
	}

	return user
}

// readPump dispatches inbound messages and releases the connection from the
// game when the socket closes.
func (that *Server) readPump(ctx context.Context, c *client) {
	log := that.logger.With("method", "readPump", "connID", c.id)

	defer func() {
		that.hub.unregister(c)
		that.uGame.Release(c.id)
		c.conn.Close()

		log.Info("WebSocket connection closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error("failed to set read deadline", "error", err)
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		that.dispatch(ctx, c, data)
	}
}

func (that *Server) writePump(c *client) {
	log := that.logger.With("method", "writePump", "connID", c.id)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("failed to set write deadline", "error", err)
			}

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("failed to set write deadline", "error", err)
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
