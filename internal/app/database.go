package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Параметры пула соединений
const (
	dbMaxConns        = 10
	dbMinConns        = 1
	dbMaxConnLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// NewPool подключается к PostgreSQL и проверяет соединение
func NewPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	logger.Info("Initializing database...")

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db dsn: %w", err)
	}
	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Error("Failed to ping database", zap.Error(err))
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("✅ Database connected")
	return pool, nil
}
