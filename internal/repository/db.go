package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool the stores need; tests substitute fakes.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds connection pool settings.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// NewPool creates a pgx pool from cfg.
func NewPool(ctx context.Context, cfg Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "kaikei-poc"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("connected to database")
	return pool, nil
}

// HealthCheck pings the database within the given timeout.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db health check: %w", err)
	}
	return nil
}

// Schema for the payment-request entry table.
const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	id UUID PRIMARY KEY,
	slip_title TEXT NOT NULL,
	payee_name TEXT NOT NULL,
	invoice_number TEXT NOT NULL DEFAULT '',
	transaction_date TEXT NOT NULL DEFAULT '',
	occurrence_month_start TEXT NOT NULL DEFAULT '',
	occurrence_month_end TEXT NOT NULL DEFAULT '',
	payment_date TEXT NOT NULL DEFAULT '',
	staff_name TEXT NOT NULL DEFAULT '',
	payment_method TEXT NOT NULL DEFAULT '',
	amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	tax_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	line_items JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);
`

// Migrate applies the schema. Idempotent.
func Migrate(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
