package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	Pool *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &PostgresStorage{Pool: pool}, nil
}

// Init creates the match history table.
func (that *PostgresStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS matches (
		id           TEXT PRIMARY KEY,
		room_id      TEXT NOT NULL,
		kind         TEXT NOT NULL,
		status       INTEGER NOT NULL,
		first_mover  INTEGER NOT NULL,
		disconnected BOOLEAN NOT NULL,
		moves        JSONB NOT NULL,
		win_line     JSONB,
		players      JSONB NOT NULL,
		started_at   TIMESTAMPTZ NOT NULL,
		finished_at  TIMESTAMPTZ NOT NULL
	)`

	_, err := that.Pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *PostgresStorage) Close() {
	that.Pool.Close()
}
