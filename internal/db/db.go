// Package db persists what outlives a battle: the status state of each
// combatant (the save-file mirror) and the finalized round logs.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Statuses returns a status repository over the pool.
func (d *DB) Statuses() *StatusRepository {
	return NewStatusRepository(d.pool)
}

// Reports returns a round report repository over the pool.
func (d *DB) Reports() *ReportRepository {
	return NewReportRepository(d.pool)
}

// Archive returns the service that stores a finished battle in one transaction.
func (d *DB) Archive() *BattleArchive {
	return NewBattleArchive(d.pool, d.Statuses(), d.Reports())
}
