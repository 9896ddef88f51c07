// Package postgres opens the PostgreSQL database behind the delivery journal.
// Live server state never goes through here; it stays in memory.
//
// Usage:
//
//	db, err := postgres.Open(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer postgres.Close(db)
//
//	if err := postgres.Migrate(ctx, db); err != nil {
//	    return err
//	}
//	journal := deliveryrepo.NewGormJournal(db, 0, logger)
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"pizzadelivery/internal/adapters/out/postgres/deliveryrepo"

	_ "github.com/lib/pq"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxConnectAttempts = 5
	retryDelay         = 2 * time.Second
	pingTimeout        = 5 * time.Second
)

// Config holds the connection settings. An empty Host disables the database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c Config) Enabled() bool {
	return c.Host != ""
}

// DSN renders the lib/pq keyword/value connection string.
func (c Config) DSN() string {
	port := c.Port
	if port == "" {
		port = "5432"
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, port, c.User, c.Password, c.Name, sslMode)
}

// Open connects through the lib/pq driver and wraps the pool in gorm. The
// database is pinged up to maxConnectAttempts times before giving up.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, error) {
	sqlDB, err := connect(ctx, cfg.DSN(), logger)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the journal table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&deliveryrepo.DeliveryDTO{}); err != nil {
		return fmt.Errorf("migrate deliveries: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func connect(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = db.PingContext(pingCtx)
			cancel()
			if err == nil {
				return db, nil
			}
			_ = db.Close()
		}

		lastErr = err
		logger.WarnContext(ctx, "Database not reachable yet",
			"attempt", attempt, "max_attempts", maxConnectAttempts, "error", err)

		if attempt == maxConnectAttempts {
			break
		}

		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("connect canceled: %w", ctx.Err())
		}
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxConnectAttempts, lastErr)
}
