// Package storage opens the GORM connections used by the persistent modules.
package storage

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database a module connects to.
type Config struct {
	Driver string
	// DSN is a file path (or ":memory:") for sqlite and a connection URL for postgres.
	DSN   string
	Debug bool
}

// ConfigFromEnv reads <PREFIX>_DB_DRIVER and <PREFIX>_DB_PATH / <PREFIX>_DATABASE_URL,
// falling back to a sqlite file named defaultPath.
func ConfigFromEnv(prefix, defaultPath string) Config {
	cfg := Config{
		Driver: strings.ToLower(os.Getenv(prefix + "_DB_DRIVER")),
		DSN:    os.Getenv(prefix + "_DB_PATH"),
		Debug:  os.Getenv("DB_DEBUG") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Driver == DriverPostgres {
		cfg.DSN = os.Getenv(prefix + "_DATABASE_URL")
	}
	if cfg.DSN == "" {
		cfg.DSN = defaultPath
	}
	return cfg
}

// Open connects to the configured database and migrates models.
func Open(cfg Config, models ...any) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if db.Dialector.Name() == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// SQLite allows a single writer; one connection also keeps
		// ":memory:" databases shared across the pool.
		sqlDB.SetMaxOpenConns(1)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log.Printf("[storage] Connected to %s database: %s", db.Dialector.Name(), redact(cfg))
	return db, nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func redact(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return "postgres://***"
	}
	return cfg.DSN
}
