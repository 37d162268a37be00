package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	// This is necessary to register the MySQL driver
	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/extra/bunslog"

	"github.com/raceline/f1-telemetry/internal/config"
)

func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DBImpl, error) {
	var db *bun.DB

	sqldb, err := sql.Open("mysql", cfg.DBConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// https://bun.uptrace.dev/guide/running-bun-in-production.html#running-bun-in-production
	maxOpenConns := 4 * runtime.GOMAXPROCS(0)
	sqldb.SetMaxOpenConns(maxOpenConns)
	sqldb.SetMaxIdleConns(maxOpenConns)

	db = bun.NewDB(sqldb, mysqldialect.New())
	db.AddQueryHook(bunslog.NewQueryHook(
		bunslog.WithQueryLogLevel(queryLogLevel(cfg.DBQueryLogLevel)),
		bunslog.WithSlowQueryLogLevel(slog.LevelWarn),
		bunslog.WithErrorQueryLogLevel(slog.LevelError),
		bunslog.WithSlowQueryThreshold(3*time.Second),
		bunslog.WithLogger(logger.With("component", "database")),
	))

	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewDB(db), nil
}

func queryLogLevel(level string) slog.Level {
	if level == "info" {
		return slog.LevelInfo
	}

	return slog.LevelDebug
}
