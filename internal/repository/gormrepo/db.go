package gormrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jbfsport-backend/config"
	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// OpenGorm wraps the pgx pool in database/sql and opens GORM on top of it,
// so GORM and golang-migrate share the pool's connections and limits.
func OpenGorm(pool *pgxpool.Pool, cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), NewGormConfig(cfg))
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, sqlDB, nil
}

func NewGormConfig(cfg *config.Config) *gorm.Config {
	return &gorm.Config{
		Logger:                 logger.NewGormLogger(logger.GormLevel(cfg.LogLevel), cfg.DBSlowQueryThreshold),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translateError maps driver and GORM errors onto the domain sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrParentNotFound, err)
	}
	return err
}
