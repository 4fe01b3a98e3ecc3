package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
	"github.com/rocketscienceinc/gomoku-backend/transport/rest"
	"github.com/rocketscienceinc/gomoku-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	userRepo := repository.NewUserRepository(redisStorage.Connection)
	sessionRepo := repository.NewSessionRepository(redisStorage.Connection, userRepo)

	matchRepo, closeHistory, err := newMatchRepository(ctx, conf, redisStorage)
	if err != nil {
		return err
	}
	defer closeHistory()

	hub := websocket.NewHub(logger, conf.Websocket.SendBuffer)
	finalizer := usecase.NewFinalizer(logger, userRepo, matchRepo, hub, usecase.FinalizerConfig{
		CallTimeout: conf.Finalizer.Timeout,
		MaxElapsed:  conf.Finalizer.MaxElapsed,
	})
	gameManager := usecase.NewGameManager(logger, hub, finalizer)

	// finish pending history writes before the stores are closed
	defer finalizer.Close()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, rest.NewHandlers()); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, hub, gameManager, sessionRepo, conf.Websocket.AllowedOrigins)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newMatchRepository picks the history store configured by history.driver.
func newMatchRepository(ctx context.Context, conf *config.Config, redisStorage *storage.RedisStorage) (repository.MatchRepository, func(), error) {
	if conf.History.Driver != config.HistoryPostgres {
		return repository.NewMatchRepository(redisStorage.Connection), func() {}, nil
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
	}

	if err = pgStorage.Init(ctx); err != nil {
		pgStorage.Close()
		return nil, nil, fmt.Errorf("could not init postgres storage: %w", err)
	}

	return repository.NewPostgresMatchRepository(pgStorage.Pool), pgStorage.Close, nil
}
