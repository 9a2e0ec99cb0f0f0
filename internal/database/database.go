// Package database opens the relational store, migrates the trivia schema and
// seeds fixture data.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidin1998/trivia/internal/config"
	"github.com/Aidin1998/trivia/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PoolConfig holds connection pool settings. Zero values fall back to defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to the configured driver.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	pool := PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	gormLog := NewGormLogger(log)

	switch cfg.Driver {
	case "postgres":
		return NewPostgresDB(cfg.DSN, pool, gormLog)
	case "sqlite":
		return NewSQLiteDB(cfg.DSN, gormLog)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the trivia tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Question{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
