package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type userRepoDep interface {
	IncrementStats(ctx context.Context, userID string, fields []string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type matchRepoDep interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

// sessionDep re-attaches a refreshed user to a live connection.
type sessionDep interface {
	AttachUser(connID string, user *entity.User)
}

const (
	defaultCallTimeout = 5 * time.Second
	defaultMaxElapsed  = 30 * time.Second
)

type FinalizerConfig struct {
	// CallTimeout bounds a single store call.
	CallTimeout time.Duration
	// MaxElapsed bounds all retries of one store call.
	MaxElapsed time.Duration
}

// Finalizer persists the outcome of retired rooms: rating counters for rated
// rooms and a history record for every room. Failures are logged only.
type Finalizer struct {
	logger *slog.Logger

	userRepo  userRepoDep
	matchRepo matchRepoDep
	sessions  sessionDep

	conf FinalizerConfig

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewFinalizer(logger *slog.Logger, userRepo userRepoDep, matchRepo matchRepoDep, sessions sessionDep, conf FinalizerConfig) *Finalizer {
	if conf.CallTimeout <= 0 {
		conf.CallTimeout = defaultCallTimeout
	}

	// zero would make backoff retry forever
	if conf.MaxElapsed <= 0 {
		conf.MaxElapsed = defaultMaxElapsed
	}

	return &Finalizer{
		logger:    logger.With("component", "finalizer"),
		userRepo:  userRepo,
		matchRepo: matchRepo,
		sessions:  sessions,
		conf:      conf,
	}
}

// Finalize persists record in the background. Records arriving after Close
// are dropped.
func (that *Finalizer) Finalize(record *entity.MatchRecord) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		that.logger.Warn("finalizer is closed, dropping match", "roomID", record.RoomID, "matchID", record.ID)
		return
	}

	that.wg.Add(1)

	go func() {
		defer that.wg.Done()
		that.finalize(context.Background(), record)
	}()
}

// Close stops accepting records and blocks until every started
// finalization returned.
func (that *Finalizer) Close() {
	that.mu.Lock()
	that.closed = true
	that.mu.Unlock()

	that.wg.Wait()
}

func (that *Finalizer) finalize(ctx context.Context, record *entity.MatchRecord) {
	log := that.logger.With("method", "finalize", "roomID", record.RoomID, "matchID", record.ID)

	if record.Kind.IsRated() {
		for _, player := range record.Players {
			if player.IsGuest() {
				continue
			}

			if err := that.updateStats(ctx, record, player); err != nil {
				log.Error("failed to update player stats", "userID", player.UserID, "error", err)
			}
		}
	}

	if err := that.retry(ctx, func(ctx context.Context) error {
		return that.matchRepo.Save(ctx, record)
	}); err != nil {
		log.Error("failed to save match record", "error", err)
		return
	}

	log.Info("match finalized", "status", record.Status, "kind", record.Kind)
}

func (that *Finalizer) updateStats(ctx context.Context, record *entity.MatchRecord, player entity.Player) error {
	fields := entity.StatFields(record.Kind, record.Status.OutcomeFor(player.Slot))
	if len(fields) == 0 {
		return nil
	}

	if err := that.retry(ctx, func(ctx context.Context) error {
		return that.userRepo.IncrementStats(ctx, player.UserID, fields)
	}); err != nil {
		return fmt.Errorf("failed to increment stats: %w", err)
	}

	var user *entity.User
	if err := that.retry(ctx, func(ctx context.Context) error {
		var err error
		user, err = that.userRepo.GetByID(ctx, player.UserID)
		return err
	}); err != nil {
		return fmt.Errorf("failed to reload user: %w", err)
	}

	that.sessions.AttachUser(player.ID, user)

	return nil
}

// retry runs op with exponential backoff. Not-found errors are permanent.
func (that *Finalizer) retry(ctx context.Context, op func(ctx context.Context) error) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = that.conf.MaxElapsed

	return backoff.Retry(func() error {
		callCtx, cancel := context.WithTimeout(ctx, that.conf.CallTimeout)
		defer cancel()

		err := op(callCtx)
		if errors.Is(err, apperror.ErrNotFound) {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(policy, ctx))
}
