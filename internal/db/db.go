package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/booking-wizard/internal/config"
)

const connectTimeout = 2 * time.Minute

// New opens the Postgres connection, retrying with exponential backoff until
// the database answers, then applies the schema migrations.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Error)
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = connectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	var database *gorm.DB
	err := backoff.RetryNotify(
		func() error {
			conn, err := gorm.Open(postgres.Open(cfg.DB.DSN), gormCfg)
			if err != nil {
				return fmt.Errorf("open: %w", err)
			}
			sqlDB, err := conn.DB()
			if err != nil {
				return backoff.Permanent(fmt.Errorf("sql db: %w", err))
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				_ = sqlDB.Close()
				return fmt.Errorf("ping: %w", err)
			}
			database = conn
			return nil
		},
		retryPolicy,
		func(err error, next time.Duration) {
			log.Warn().Err(err).Dur("next_attempt_in", next).Msg("postgres connection failed, retrying")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.DB.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
		}
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	if err := runMigrations(database); err != nil {
		return nil, err
	}
	log.Info().Msg("database ready")
	return database, nil
}
