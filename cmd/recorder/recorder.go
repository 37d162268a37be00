package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/raceline/f1-telemetry/internal/config"
	"github.com/raceline/f1-telemetry/internal/database"
	"github.com/raceline/f1-telemetry/internal/influx"
	"github.com/raceline/f1-telemetry/internal/servers/base"
	recorderWorker "github.com/raceline/f1-telemetry/internal/servers/recorder"
)

// Run subscribes to the published packets and persists them until a shutdown signal arrives.
func Run(cfg *config.Config, logger *slog.Logger) error {
	// setup wait group for goroutines
	var wg sync.WaitGroup

	// create a context for graceful shutdown
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	// connect to database
	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	//nolint:errcheck // nothing to do if closing fails on the way out
	defer db.Close()

	// the time-series sink is optional
	var points recorderWorker.PointWriter
	if cfg.InfluxURL != "" {
		var writer *influx.Writer
		if writer, err = openPointWriter(ctx, cfg, logger); err != nil {
			return err
		}

		defer writer.Close()
		points = writer
	} else {
		logger.Info("no influxdb configured, motion and telemetry packets will not be recorded")
	}

	// connect to NATS server
	nc, err := base.CreateNATSConnection(cfg, logger)
	if err != nil {
		return err
	}
	defer nc.Close()

	worker := recorderWorker.NewRecorderWorker(ctx, cfg, logger, db, points)
	if err = worker.StartProcessingPackets(nc); err != nil {
		return err
	}

	// drain subscriptions on shutdown
	wg.Add(1)
	go worker.Stop(&wg)

	// wait for shutdown signal
	return worker.WaitForShutdown(cancelCtx, &wg)
}

// openPointWriter connects to influxdb. The writer is closed again when the server is unreachable.
func openPointWriter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*influx.Writer, error) {
	writer := influx.NewWriter(cfg, logger)
	if err := writer.Ping(ctx); err != nil {
		writer.Close()
		return nil, err
	}

	return writer, nil
}
