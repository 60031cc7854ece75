package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"courseapi/internal/config"
	"courseapi/internal/model"
)

// Open connects to the store selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return NewMySQL(cfg.MySQLDSN)
	case config.DriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewSQLite opens (or creates) a SQLite database at path.
// Tests pass a shared-cache in-memory DSN.
func NewSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

// gormConfig translates driver errors so unique index violations surface as
// gorm.ErrDuplicatedKey on both drivers, and logs through log.
func gormConfig(log *slog.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.NewSlogLogger(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Migrate creates or updates the schema. With reset set, tables are dropped first.
func Migrate(gormDB *gorm.DB, reset bool) error {
	if reset {
		slog.Warn("RESET_DB=true detected, dropping all tables")
		// courses first, they reference users
		for _, table := range []interface{}{&model.Course{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				slog.Warn("failed to drop table (may not exist)", "error", err)
			}
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Course{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
