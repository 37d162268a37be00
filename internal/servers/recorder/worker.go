package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/nats-io/nats.go"

	"github.com/raceline/f1-telemetry/internal/config"
	"github.com/raceline/f1-telemetry/internal/database"
	"github.com/raceline/f1-telemetry/internal/servers/base"
)

const (
	// StoreTimeout bounds every database call made for one message.
	StoreTimeout = 5 * time.Second
)

// EventStore is where event packets end up.
type EventStore interface {
	database.SessionEventQueries
}

// PointWriter receives the player car's time series.
type PointWriter interface {
	WritePoint(point *influxdb2_write.Point)
}

// Stats counts what the worker did with the messages it received.
type Stats struct {
	Events     uint64
	Duplicates uint64
	Points     uint64
	Ignored    uint64
	Failed     uint64
}

type RecorderWorker struct {
	natsConn      *nats.Conn
	cfg           *config.Config
	logger        *slog.Logger
	ctx           context.Context
	events        EventStore
	points        PointWriter
	subscriptions []*nats.Subscription

	eventsRecorded atomic.Uint64
	duplicates     atomic.Uint64
	pointsWritten  atomic.Uint64
	ignored        atomic.Uint64
	failed         atomic.Uint64
}

// NewRecorderWorker builds a worker. points may be nil, in which case motion and telemetry
// packets are ignored.
func NewRecorderWorker(ctx context.Context, cfg *config.Config, logger *slog.Logger, events EventStore, points PointWriter) *RecorderWorker {
	return &RecorderWorker{
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		events: events,
		points: points,
	}
}

func (s *RecorderWorker) Config() *config.Config {
	return s.cfg
}

func (s *RecorderWorker) Logger() *slog.Logger {
	return s.logger
}

func (s *RecorderWorker) NATS() *nats.Conn {
	return s.natsConn
}

func (s *RecorderWorker) Stats() Stats {
	return Stats{
		Events:     s.eventsRecorded.Load(),
		Duplicates: s.duplicates.Load(),
		Points:     s.pointsWritten.Load(),
		Ignored:    s.ignored.Load(),
		Failed:     s.failed.Load(),
	}
}

// StartProcessingPackets subscribes to every packet kind under the configured prefix.
func (s *RecorderWorker) StartProcessingPackets(nc *nats.Conn) error {
	s.natsConn = nc
	subject := s.Config().TelemetryWildcardSubject()

	s.Logger().Info("subscribing to NATS subject", "subject", subject)
	newSubscription, err := s.NATS().Subscribe(subject, s.ProcessPacket)
	if err != nil {
		return fmt.Errorf("could not subscribe to %s: %w", subject, err)
	}

	s.subscriptions = append(s.subscriptions, newSubscription)
	return nil
}

// Stop drains the subscriptions once the context is cancelled. Messages delivered during the drain
// are still stored, see storeContext.
func (s *RecorderWorker) Stop(wg *sync.WaitGroup) {
	defer wg.Done()

	<-s.ctx.Done()
	for _, subscription := range s.subscriptions {
		if err := subscription.Drain(); err != nil {
			s.Logger().Warn("failed to drain subscription", "subject", subscription.Subject, "error", err)
		}
	}

	s.Logger().Info("recorder stopped", "stats", s.Stats())
}

// storeContext is detached from the worker's context so a shutdown does not abort writes for
// messages that were already delivered.
func (s *RecorderWorker) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(s.ctx), StoreTimeout)
}

func (s *RecorderWorker) WaitForShutdown(cancelCtx context.CancelFunc, wg *sync.WaitGroup) error {
	return base.WaitForSignal(s.Logger(), cancelCtx, wg, time.Duration(s.Config().ShutdownTimeoutSeconds)*time.Second)
}
