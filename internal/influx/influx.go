package influx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/raceline/f1-telemetry/internal/config"
)

var ErrNotRunning = errors.New("influxdb is not running")

// Writer batches points into a single bucket. Writes are asynchronous; failures surface
// through the error log rather than the caller.
type Writer struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	logger *slog.Logger
}

func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	client := influxdb2.NewClientWithOptions(
		cfg.InfluxURL,
		cfg.InfluxToken,
		influxdb2.DefaultOptions().
			SetBatchSize(cfg.InfluxBatchSize).
			SetFlushInterval(1000),
	)

	w := &Writer{
		client: client,
		writer: client.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket),
		logger: logger.With("component", "influx", "bucket", cfg.InfluxBucket),
	}

	go w.logErrors()
	return w
}

// Ping validates that the server is reachable.
func (w *Writer) Ping(ctx context.Context) error {
	running, err := w.client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping influxdb: %w", err)
	}

	if !running {
		return ErrNotRunning
	}

	return nil
}

func (w *Writer) WritePoint(point *influxdb2_write.Point) {
	w.writer.WritePoint(point)
}

// Close flushes pending points and closes the client.
func (w *Writer) Close() {
	w.writer.Flush()
	w.client.Close()
}

func (w *Writer) logErrors() {
	for writeErr := range w.writer.Errors() {
		w.logger.Error("error sending data to influxdb", "error", writeErr)
	}
}
