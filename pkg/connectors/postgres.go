package connectors

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/configs"
)

// PostgresConnector exposes a request-scoped gorm handle. Services never hold
// a *gorm.DB directly; they resolve one per call so session options and
// tracing stay attached to the request context.
type PostgresConnector interface {
	DB(ctx context.Context) *gorm.DB
	Close() error
}

type postgresConnector struct {
	db     *gorm.DB
	logger commons.Logger
}

// NewPostgresConnector opens the database connection described by cfg.
func NewPostgresConnector(cfg configs.PostgresConfig, logger commons.Logger) (PostgresConnector, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres %s/%s: %w", cfg.Host, cfg.Database, err)
	}

	logger.Infof("connected to postgres: host=%s database=%s", cfg.Host, cfg.Database)
	return &postgresConnector{db: db, logger: logger}, nil
}

// NewGormConnector wraps an already opened gorm handle. Used by tests that
// run against an in-memory sqlite database.
func NewGormConnector(db *gorm.DB, logger commons.Logger) PostgresConnector {
	return &postgresConnector{db: db, logger: logger}
}

func (p *postgresConnector) DB(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx)
}

func (p *postgresConnector) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
