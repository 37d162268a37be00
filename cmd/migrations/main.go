package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/raceline/f1-telemetry/internal/config"
	"github.com/raceline/f1-telemetry/internal/database"
	"github.com/raceline/f1-telemetry/internal/database/migrations"
)

func main() {
	// load .env file automatically
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found (continuing with system environment)")
	}

	// parse config from environment
	cfg := config.ParseConfigFromEnv()

	// detect the log level
	logLevel := slog.LevelInfo
	if err = logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level: '%s'\n", cfg.LogLevel)
		os.Exit(1)
	}

	// setup our logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// create a context
	ctx := context.Background()

	// create a database connection
	db, err := database.Connect(ctx, &cfg, logger)
	if err != nil {
		logger.Error("failed to create database connection", "error", err)
		os.Exit(1)
	}

	// run migrations
	if err = migrations.Migrate(ctx, db.BunDB()); err != nil {
		_ = db.Close()
		logger.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("database migrations applied")
	_ = db.Close()
}
