package database

import (
	"fmt"
	"strings"

	"quiz-progression/internal/config"
	"quiz-progression/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	DriverOracle = "oracle"
	DriverSQLite = "sqlite"
)

func init() {
	// sqlx does not know go-ora's driver name; Oracle takes :name placeholders.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// Connect opens the configured database and verifies the connection.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.DB.Driver {
	case DriverOracle, "":
		return Open(DriverOracle, cfg.GetDSN())
	case DriverSQLite:
		return Open(DriverSQLite, cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DB.Driver)
	}
}

// Open connects with an explicit driver name and DSN.
func Open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	switch driver {
	case DriverOracle:
		// Oracle reports unquoted identifiers in upper case.
		db.Mapper = reflectx.NewMapperTagFunc("db", strings.ToUpper, strings.ToUpper)
	case DriverSQLite:
		// A single writer keeps SQLite from returning SQLITE_BUSY under concurrent submissions.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	logger.Get().Info("Connected to database", zap.String("driver", driver))
	return db, nil
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
