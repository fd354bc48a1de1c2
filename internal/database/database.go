package database

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdg-garage/conference-api/internal/config"
	"github.com/gdg-garage/conference-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(os.Stdout)})
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.DatabaseDriver, err)
	}

	if cfg.DatabaseDriver == "" || cfg.DatabaseDriver == "sqlite" {
		// SQLite allows a single writer; one connection keeps owner
		// transactions from failing with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// newLogger logs slow queries and failures. Missing records are an
// expected outcome of lookups (lazy profile creation, unknown API keys) and
// are not logged.
func newLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Connect is Open for process startup: any failure is fatal.
func Connect(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.Conference{},
		&models.Reservation{},
		&models.IDAllocation{},
		&models.APIKey{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DatabaseDriver {
	case "", "sqlite":
		return sqlite.Open(cfg.DatabasePath), nil
	case "postgres":
		return postgres.Open(cfg.DatabaseDSN), nil
	case "mysql":
		return mysql.Open(cfg.DatabaseDSN), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}
