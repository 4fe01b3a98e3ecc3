package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type pgMatch struct {
	pool *pgxpool.Pool
}

// NewPostgresMatchRepository stores history in the matches table created by
// storage.PostgresStorage.Init.
func NewPostgresMatchRepository(pool *pgxpool.Pool) MatchRepository {
	return &pgMatch{
		pool: pool,
	}
}

func (that *pgMatch) Save(ctx context.Context, record *entity.MatchRecord) error {
	moves, err := json.Marshal(record.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}

	players, err := json.Marshal(record.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}

	var winLine *string
	if len(record.WinLine) > 0 {
		line, err := json.Marshal(record.WinLine)
		if err != nil {
			return fmt.Errorf("failed to marshal win line: %w", err)
		}

		encoded := string(line)
		winLine = &encoded
	}

	query := `INSERT INTO matches
		(id, room_id, kind, status, first_mover, disconnected, moves, win_line, players, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`

	_, err = that.pool.Exec(ctx, query,
		record.ID,
		record.RoomID,
		string(record.Kind),
		int(record.Status),
		record.FirstMover,
		record.Disconnected,
		string(moves),
		winLine,
		string(players),
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("can't save match: %w", err)
	}

	return nil
}

func (that *pgMatch) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	query := `SELECT id, room_id, kind, status, first_mover, disconnected, moves, win_line, players, started_at, finished_at
		FROM matches WHERE id = $1`

	var (
		record  entity.MatchRecord
		kind    string
		status  int
		moves   []byte
		winLine []byte
		players []byte
	)

	err := that.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.RoomID,
		&kind,
		&status,
		&record.FirstMover,
		&record.Disconnected,
		&moves,
		&winLine,
		&players,
		&record.StartedAt,
		&record.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, apperror.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("can't find match: %w", err)
	}

	record.Kind = entity.RoomKind(kind)
	record.Status = entity.Status(status)

	if err = json.Unmarshal(moves, &record.Moves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}

	if err = json.Unmarshal(players, &record.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}

	if len(winLine) > 0 {
		if err = json.Unmarshal(winLine, &record.WinLine); err != nil {
			return nil, fmt.Errorf("failed to unmarshal win line: %w", err)
		}
	}

	return &record, nil
}
