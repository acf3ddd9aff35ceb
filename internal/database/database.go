package database

import (
	"context"
	"fmt"

	"law-quiz/internal/config"
	"law-quiz/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
)

// database/sql driver names registered by the imported drivers.
const (
	DriverOracle = "oracle"
	DriverPgx    = "pgx"
)

func init() {
	// go-ora registers as "oracle", which sqlx does not know; it binds
	// positionally, so :argN placeholders work.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// DriverName maps a store driver from config to its database/sql driver.
func DriverName(storeDriver string) (string, error) {
	switch storeDriver {
	case config.StoreDriverOracle:
		return DriverOracle, nil
	case config.StoreDriverPostgres:
		return DriverPgx, nil
	default:
		return "", fmt.Errorf("store driver %q is not a SQL driver", storeDriver)
	}
}

// Connect opens and pings the SQL database selected by cfg.Store.Driver.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driverName, err := DriverName(cfg.Store.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Store.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Store.Driver, err)
	}

	logger.Get().Info("Connected to SQL store",
		zap.String("driver", cfg.Store.Driver),
		zap.String("host", cfg.DB.Host),
		zap.String("database", cfg.DB.DBName),
	)
	return db, nil
}
