// Package sandbox is a local stand-in for the hosted warehouse backend. It
// serves the same REST API and response envelope, backed by a SQLite or
// Postgres database, so the client can be developed and exercised without
// network access to the real backend.
package sandbox

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"example.com/depot/services/warehouse/config"
	"example.com/depot/services/warehouse/internal/models"
)

// OpenDatabase connects to the sandbox database and runs migrations.
// SQLite is the default driver; Postgres is available for setups that want
// the same engine as the hosted backend.
func OpenDatabase(cfg config.SandboxConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "", "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = "warehouse-sandbox.db"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		return nil, errors.Errorf("unsupported sandbox db driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to sandbox database")
	}

	if cfg.DBDriver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get DB instance")
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := models.SetupModels(db); err != nil {
		return nil, err
	}
	return db, nil
}
