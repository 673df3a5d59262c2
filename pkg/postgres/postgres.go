// Package postgres wraps a pgx pool together with a squirrel builder.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultConnectTimeout = 20 * time.Second
	defaultMaxPoolSize    = 4
)

// Executor is satisfied by both the pool and a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is the subset of pgxpool.Pool used by repositories; pgxmock pools satisfy it too.
type Pool interface {
	Executor
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type Postgres struct {
	Pool    Pool
	Builder squirrel.StatementBuilderType

	maxPoolSize    int32
	connectTimeout time.Duration
}

type Option func(*Postgres)

func MaxPoolSize(size int) Option {
	return func(p *Postgres) {
		if size > 0 {
			p.maxPoolSize = int32(size)
		}
	}
}

func ConnectTimeout(d time.Duration) Option {
	return func(p *Postgres) {
		if d > 0 {
			p.connectTimeout = d
		}
	}
}

func New(url string, opts ...Option) (*Postgres, error) {
	pg := &Postgres{
		Builder:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		maxPoolSize:    defaultMaxPoolSize,
		connectTimeout: defaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(pg)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	cfg.MaxConns = pg.maxPoolSize

	ctx, cancel := context.WithTimeout(context.Background(), pg.connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	pg.Pool = pool

	return pg, nil
}

// InTransaction runs fn inside a transaction, rolling back when fn fails.
func (p *Postgres) InTransaction(ctx context.Context, fn func(tx Executor) error) error {
	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
